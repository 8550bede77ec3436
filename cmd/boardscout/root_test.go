package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute_BadConfigPrintsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"queries", "--config", missing})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() = nil, want error for a missing config file")
	}
	// A non-zero exit with silent output is useless in a cron log: the
	// failure must reach stderr.
	if !strings.Contains(stderr.String(), "load config") {
		t.Errorf("stderr = %q, want the config error printed", stderr.String())
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("loadConfig() = nil, want error for a missing file")
	}
}
