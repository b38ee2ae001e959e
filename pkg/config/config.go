package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = "tools.yaml"

// Tool describes one locally registered tool or service. Name is the only
// stable identifier; everything else is optional.
type Tool struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url,omitempty"`
	HealthURL      string `yaml:"health_url,omitempty"`
	HealthCheck    string `yaml:"health_check,omitempty"` // "http" | "tcp" | "process"
	WindowTitle    string `yaml:"window_title,omitempty"`
	ProcessPattern string `yaml:"process_pattern,omitempty"`
	StartCommand   string `yaml:"start_command,omitempty"`
	StartCwd       string `yaml:"start_cwd,omitempty"`
	StartWSL       bool   `yaml:"start_wsl,omitempty"`
	Description    string `yaml:"description,omitempty"`
}

type File struct {
	Tools []Tool `yaml:"tools"`
}

// Tool returns the tool with the given name, if configured.
func (f *File) Tool(name string) (Tool, bool) {
	for _, t := range f.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

func DefaultPath(root string) string {
	return filepath.Join(root, DefaultConfigFilename)
}

func LoadFromFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg File
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.expandEnv()
	return &cfg, nil
}

// Discover returns the first existing tools.yaml among the usual
// locations: the working directory, then next to the executable. Empty
// string when none exists.
func Discover(root string) string {
	candidates := []string{DefaultPath(root)}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, DefaultPath(filepath.Dir(exe)))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func LoadOptional(path string) (*File, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, errors.Wrap(err, "stat config")
	}
	return LoadFromFile(path)
}

func (f *File) validate() error {
	seen := map[string]bool{}
	for _, t := range f.Tools {
		if t.Name == "" {
			return errors.New("tool missing name")
		}
		if seen[t.Name] {
			return errors.Errorf("duplicate tool name %q", t.Name)
		}
		seen[t.Name] = true
		switch t.HealthCheck {
		case "", "http", "tcp", "process":
		default:
			return errors.Errorf("tool %q: unknown health_check %q", t.Name, t.HealthCheck)
		}
	}
	return nil
}

// expandEnv expands environment variables in start_command and start_cwd.
// WSL commands are left alone: bash interprets its own variables.
func (f *File) expandEnv() {
	for i := range f.Tools {
		t := &f.Tools[i]
		if !t.StartWSL && t.StartCommand != "" {
			t.StartCommand = os.ExpandEnv(t.StartCommand)
		}
		if t.StartCwd != "" {
			t.StartCwd = os.ExpandEnv(t.StartCwd)
		}
	}
}
