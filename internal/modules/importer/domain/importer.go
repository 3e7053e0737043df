package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrImporterDisabled = errors.New("importer is disabled")
	ErrChecksumMismatch = errors.New("importer checksum mismatch")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one registered importer binary. Binary paths are
// resolved to absolute paths by the manifest store before validation.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Binary      string `json:"binary"`
	SHA256      string `json:"sha256"`
	Enabled     bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("importer name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("importer version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("importer binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("importer sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name        string
	Version     string
	Description string
}

type ImportRequest struct {
	WorkspacePath string
	Query         string
	Limit         int
}

func (r ImportRequest) Validate() error {
	if r.WorkspacePath == "" {
		return fmt.Errorf("workspace path is required")
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// ImportedItem is one activity offered by an importer, ready to be
// written into the deck under its convergent source id.
type ImportedItem struct {
	Name           string
	Slug           string
	Tags           []string
	DefaultMinutes int
	Body           string
}

func (i ImportedItem) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("imported item name is required")
	}
	if i.DefaultMinutes < 0 {
		return fmt.Errorf("imported item default minutes must not be negative")
	}
	return nil
}
