// Package project reads the npm manifest, the yarn lockfile and the
// remapping sources of a workspace.
package project

import (
	"context"
	"encoding/json"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectLoader = (*Loader)(nil)

// Loader implements ports.ProjectLoader on top of a workspace.
type Loader struct {
	workspace ports.Workspace
	cfg       *domain.Config
}

// NewLoader creates a new Loader.
func NewLoader(workspace ports.Workspace, cfg *domain.Config) *Loader {
	return &Loader{workspace: workspace, cfg: cfg}
}

// Load reads a fresh project snapshot. Files that are missing are treated as
// empty; files that cannot be parsed are reported in Project.Warnings. Only
// workspace I/O failures are returned as errors.
func (l *Loader) Load(ctx context.Context) (*domain.Project, error) {
	p := &domain.Project{}

	content, ok, err := l.read(ctx, domain.ManifestFileName)
	if err != nil {
		return nil, err
	}
	if ok {
		var m domain.Manifest
		if err := json.Unmarshal([]byte(content), &m); err != nil {
			p.Warnings = append(p.Warnings, zerr.With(domain.Because(domain.ErrManifestParse, err), "path", domain.ManifestFileName))
		} else {
			p.Manifest = &m
		}
	}

	content, ok, err = l.read(ctx, domain.LockfileName)
	if err != nil {
		return nil, err
	}
	if ok {
		lock, errs := ParseLockfile(content)
		p.Lockfile = lock
		p.Warnings = append(p.Warnings, errs...)
	}

	rules, errs, err := l.loadRemappings(ctx)
	if err != nil {
		return nil, err
	}
	p.Remappings = rules
	p.Warnings = append(p.Warnings, errs...)

	return p, nil
}

// loadRemappings concatenates the rules of remappings.txt and, when file
// configuration is enabled, of the project config file.
func (l *Loader) loadRemappings(ctx context.Context) (domain.Remappings, []error, error) {
	var (
		rules domain.Remappings
		warns []error
	)

	content, ok, err := l.read(ctx, domain.RemappingsFileName)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		r, errs := domain.ParseRemappings(content)
		rules = append(rules, r...)
		warns = append(warns, errs...)
	}

	if !l.cfg.FileConfiguration {
		return rules, warns, nil
	}

	content, ok, err = l.read(ctx, domain.ProjectConfigFileName)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		lines, err := projectConfigRemappings(content)
		if err != nil {
			warns = append(warns, zerr.With(err, "path", domain.ProjectConfigFileName))
		} else {
			r, errs := domain.ParseRemappingLines(lines)
			rules = append(rules, r...)
			warns = append(warns, errs...)
		}
	}

	return rules, warns, nil
}

type projectConfig struct {
	Remappings       []string `json:"remappings"`
	SolidityCompiler struct {
		Settings struct {
			Remappings []string `json:"remappings"`
		} `json:"settings"`
	} `json:"solidity-compiler"`
}

func projectConfigRemappings(content string) ([]string, error) {
	var cfg projectConfig
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, domain.Because(domain.ErrProjectConfigParse, err)
	}
	if len(cfg.Remappings) > 0 {
		return cfg.Remappings, nil
	}
	return cfg.SolidityCompiler.Settings.Remappings, nil
}

func (l *Loader) read(ctx context.Context, name string) (string, bool, error) {
	ok, err := l.workspace.Exists(ctx, name)
	if err != nil || !ok {
		return "", false, err
	}
	content, err := l.workspace.ReadFile(ctx, name)
	if err != nil {
		return "", false, err
	}
	return content, true, nil
}
