package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile is a named output preset, typically one per target spreadsheet
// application. Empty fields fall back to the invocation's defaults.
type Profile struct {
	Name      string
	Prefix    string
	Separator string
}

// Registry exposes the presets defined in an INI profile file, one section
// per profile.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:      name,
		Prefix:    section.Key("prefix").String(),
		Separator: section.Key("separator").String(),
	}, nil
}
