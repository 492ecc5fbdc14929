package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML file of generate parameters. Unset fields leave the
// corresponding parameter to flags, environment or defaults.
//
//	scenario: json
//	fromdate: "2024-01-01"
//	todate: "2024-01-31"
//	files: {min: 2, max: 5}
//	docs: {min: 10, max: 20}
//	lines: {min: 100, max: 2000}
//	namespace: my-project
//	bucket: invoices
//	pattern: "${date}/invoices_${number}.json"
type Profile struct {
	Name        string  `yaml:"name"`
	Scenario    *string `yaml:"scenario"`
	FromDate    *string `yaml:"fromdate"`
	ToDate      *string `yaml:"todate"`
	Files       Bounds  `yaml:"files"`
	Docs        Bounds  `yaml:"docs"`
	Lines       Bounds  `yaml:"lines"`
	Sleep       *int    `yaml:"sleep"`
	Namespace   *string `yaml:"namespace"`
	Bucket      *string `yaml:"bucket"`
	Pattern     *string `yaml:"pattern"`
	LogLevel    *string `yaml:"loglevel"`
	Seed        *uint64 `yaml:"seed"`
	Compression *string `yaml:"compression"`
	Sink        *string `yaml:"sink"`
	OutputDir   *string `yaml:"output_dir"`

	Source string `yaml:"-"`
}

// Bounds is an optional min/max pair.
type Bounds struct {
	Min *int `yaml:"min"`
	Max *int `yaml:"max"`
}

// ProfileFromYAML parses a raw YAML profile.
func ProfileFromYAML(data string) (*Profile, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, errors.New("profile YAML is empty")
	}
	var p Profile
	if err := yaml.Unmarshal([]byte(trimmed), &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	return &p, nil
}

// LoadProfile loads a profile from a YAML file path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	p, err := ProfileFromYAML(string(data))
	if err != nil {
		return nil, err
	}
	p.Source = path
	return p, nil
}
