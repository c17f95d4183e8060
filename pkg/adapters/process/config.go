package process

import (
	"fmt"
	"strings"
)

// InjectionMode selects how secrets are injected into executed commands.
type InjectionMode string

const (
	// ModeNone runs commands as they are.
	ModeNone InjectionMode = "none"
	// ModeInfisical wraps commands with "infisical run".
	ModeInfisical InjectionMode = "infisical"
	// ModeTemplate wraps commands with an arbitrary prefix (doppler, op, envchain...).
	ModeTemplate InjectionMode = "template"
)

// DefaultInnerShell interprets the command inside the wrapper.
const DefaultInnerShell = "bash"

// InjectionConfig describes the secret-injection wrapper.
type InjectionConfig struct {
	Mode   InjectionMode `mapstructure:"mode" yaml:"mode" json:"mode"`
	Env    string        `mapstructure:"env" yaml:"env" json:"env"`
	Path   string        `mapstructure:"path" yaml:"path" json:"path"`
	Prefix []string      `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
	Shell  string        `mapstructure:"shell" yaml:"shell" json:"shell"`
}

// NewInjector builds the wrapper described by cfg.
func NewInjector(cfg InjectionConfig) (Injector, error) {
	shell := cfg.Shell
	if shell == "" {
		shell = DefaultInnerShell
	}

	switch InjectionMode(strings.ToLower(string(cfg.Mode))) {
	case "", ModeNone:
		return NopInjector{}, nil
	case ModeInfisical:
		if cfg.Env == "" {
			return nil, fmt.Errorf("infisical injection requires an environment")
		}
		return InfisicalInjector{Env: cfg.Env, Path: cfg.Path, Shell: shell}, nil
	case ModeTemplate:
		if len(cfg.Prefix) == 0 {
			return nil, fmt.Errorf("template injection requires a prefix")
		}
		return TemplateInjector{Prefix: cfg.Prefix, Shell: shell}, nil
	default:
		return nil, fmt.Errorf("unknown injection mode %q", cfg.Mode)
	}
}
