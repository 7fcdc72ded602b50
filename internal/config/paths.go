package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the directories the pipeline writes to. Result sets go
// under OutputDir; transient download/extraction artifacts live under
// per-call temp dirs owned by the fetch layer, not here.
type Paths struct {
	OutputDir string
	LogsDir   string
}

// NewPaths builds paths rooted at the configured output directory.
func NewPaths(cfg *Config) *Paths {
	return &Paths{
		OutputDir: cfg.Output.Dir,
		LogsDir:   filepath.Dir(cfg.Logging.FilePath),
	}
}

// EnsureDirectories creates the output directories if missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ResolveOutput returns the full path of a result file inside OutputDir.
func (p *Paths) ResolveOutput(name string) string {
	return filepath.Join(p.OutputDir, name)
}
