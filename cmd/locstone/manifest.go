package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no locstone.toml found\nplease pass --defs and --dir explicitly, or run inside a localization project"

type projectManifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Defs    defsConfig    `toml:"defs"`
	Locales localesConfig `toml:"locales"`
}

type defsConfig struct {
	File string `toml:"file"`
}

type localesConfig struct {
	Dir   string   `toml:"dir"`
	Build []string `toml:"build"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "locstone.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadManifestConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadManifestConfig(path string) (manifestConfig, error) {
	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return manifestConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("defs") {
		return manifestConfig{}, fmt.Errorf("%s: missing [defs]", path)
	}
	if !meta.IsDefined("defs", "file") || strings.TrimSpace(cfg.Defs.File) == "" {
		return manifestConfig{}, fmt.Errorf("%s: missing [defs].file", path)
	}
	if !meta.IsDefined("locales") {
		return manifestConfig{}, fmt.Errorf("%s: missing [locales]", path)
	}
	if !meta.IsDefined("locales", "dir") || strings.TrimSpace(cfg.Locales.Dir) == "" {
		return manifestConfig{}, fmt.Errorf("%s: missing [locales].dir", path)
	}
	return cfg, nil
}

// defsPath resolves the definitions file relative to the manifest root.
func (m *projectManifest) defsPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Defs.File))
}

// localesDir resolves the localization directory relative to the manifest root.
func (m *projectManifest) localesDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Locales.Dir))
}

// resolveProject fills defs/dir from the manifest when the flags are unset.
// Flags always win over the manifest.
func resolveProject(defsFlag, dirFlag string) (string, string, error) {
	if defsFlag != "" && dirFlag != "" {
		return defsFlag, dirFlag, nil
	}
	manifest, ok, err := loadManifest(".")
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", errors.New(noManifestMessage)
	}
	if defsFlag == "" {
		defsFlag = manifest.defsPath()
	}
	if dirFlag == "" {
		dirFlag = manifest.localesDir()
	}
	return defsFlag, dirFlag, nil
}

// manifestLocales returns the configured build list, if a manifest exists.
func manifestLocales() []string {
	manifest, ok, err := loadManifest(".")
	if err != nil || !ok {
		return nil
	}
	return manifest.Config.Locales.Build
}
