package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// Origin namespaces item ids: imported items are `source:<slug>`,
// operator-created ones `custom:<slug>-<suffix>`. Edits to a custom
// item never change its id, so queue entries referencing it stay valid.
type Origin string

const (
	OriginSource Origin = "source"
	OriginCustom Origin = "custom"
)

func (o Origin) Validate() error {
	switch o {
	case OriginSource, OriginCustom:
		return nil
	default:
		return fmt.Errorf("unsupported item origin %q", string(o))
	}
}

type Item struct {
	ID             string
	Name           string
	Slug           string
	Origin         Origin
	Tags           []string
	DefaultMinutes int
	AddedAt        time.Time
	NotePath       string
}

func (i Item) Validate() error {
	if err := i.Origin.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(i.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if i.DefaultMinutes < 1 {
		return fmt.Errorf("default minutes must be at least 1")
	}
	return nil
}

// ItemDocument pairs an item with its free-form facilitation notes.
type ItemDocument struct {
	Item Item
	Body string
}
