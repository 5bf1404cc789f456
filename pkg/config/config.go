// Package config loads the YAML inventory-source configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// PluginName identifies inventory source files meant for this tool.
const PluginName = "tfinv"

// PathList accepts either a single YAML string or a list of strings.
type PathList []string

func (p *PathList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*p = PathList{single}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	*p = PathList(many)
	return nil
}

type Config struct {
	Plugin             string   `yaml:"plugin"`
	ProjectPath        PathList `yaml:"project_path"`
	StateFile          string   `yaml:"state_file"`
	SearchChildModules bool     `yaml:"search_child_modules"`
	BinaryPath         string   `yaml:"binary_path"`
	Workspace          string   `yaml:"workspace"`
}

// LoadConfig reads an inventory source file and applies defaults: the current
// directory as the single project path and the "default" workspace.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	if cfg.Plugin != "" && cfg.Plugin != PluginName {
		return nil, fmt.Errorf("unsupported plugin %q in %s", cfg.Plugin, file)
	}
	if len(cfg.ProjectPath) == 0 {
		cfg.ProjectPath = PathList{"."}
	}
	if cfg.Workspace == "" {
		cfg.Workspace = "default"
	}
	return &cfg, nil
}

// ProjectPaths returns the configured project paths in declaration order.
func (c *Config) ProjectPaths() []string {
	return []string(c.ProjectPath)
}
