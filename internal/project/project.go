package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gotimber/internal/connection"
)

// FormatVersion is written into every snapshot
const FormatVersion = 1

// Project is a saved connection parameter set
type Project struct {
	Version     int              `json:"version"`
	Name        string           `json:"name,omitempty"`
	Author      string           `json:"author,omitempty"`
	Description string           `json:"description,omitempty"`
	Connection  connection.Input `json:"connection"`
}

// New wraps an input into a project snapshot
func New(name string, in connection.Input) *Project {
	return &Project{Version: FormatVersion, Name: name, Connection: in}
}

// LoadFromFile reads a project from a JSON file
func LoadFromFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode reads a project snapshot. Unknown fields are rejected so that a
// mistyped key is never silently replaced by its zero value.
func Decode(r io.Reader) (*Project, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p Project
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if p.Version == 0 {
		p.Version = FormatVersion
	}
	if p.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported project version %d (max %d)", p.Version, FormatVersion)
	}
	return &p, nil
}

// Encode writes the project as indented JSON
func (p *Project) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Save writes the project to path, creating the directory if needed
func (p *Project) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
