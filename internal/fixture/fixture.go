// Package fixture reads offline ranking sessions from YAML files.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/vantage/pkg/ranking"
)

// Fixture is a board's items and decision log as stored on disk.
type Fixture struct {
	Items     []ranking.Item     `yaml:"items"`
	Decisions []ranking.Decision `yaml:"decisions"`
}

// Load reads and parses the fixture at path.
func Load(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	fx, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return fx, nil
}

// Parse decodes a fixture. Unknown keys are rejected and an empty document
// yields an empty fixture.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &fx, nil
}

// Write encodes fx as YAML.
func (fx *Fixture) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fx); err != nil {
		return err
	}
	return enc.Close()
}

// Record appends a decision to the log.
func (fx *Fixture) Record(d ranking.Decision) {
	fx.Decisions = append(fx.Decisions, d)
}
