package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	WorkspacePath string
	StateDir      string
	ActivitiesDir string
	ImportersDir  string
	DBPath        string
}

func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	return Config{
		WorkspacePath: workspacePath,
		StateDir:      filepath.Join(workspacePath, ".runsheet", "state"),
		ActivitiesDir: filepath.Join(workspacePath, "activities"),
		ImportersDir:  filepath.Join(workspacePath, ".runsheet", "importers"),
		DBPath:        filepath.Join(workspacePath, ".runsheet", "runsheet.db"),
	}, nil
}
