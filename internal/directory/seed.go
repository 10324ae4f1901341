package directory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed/students.yaml
var defaultSeed []byte

type seedFile struct {
	Students []StudentRecord `yaml:"students"`
}

// DefaultSeed returns the records shipped with the binary.
func DefaultSeed() ([]StudentRecord, error) {
	return ParseSeed(bytes.NewReader(defaultSeed))
}

// LoadSeed reads records from path, or the embedded seed when path is empty.
func LoadSeed(path string) ([]StudentRecord, error) {
	if path == "" {
		return DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes a YAML seed document and checks every record.
// Duplicate registrations and unknown cities are rejected.
func ParseSeed(r io.Reader) ([]StudentRecord, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Students))
	out := make([]StudentRecord, 0, len(doc.Students))
	for i, rec := range doc.Students {
		rec.RegistrationNumber = strings.TrimSpace(rec.RegistrationNumber)
		rec.FullName = strings.TrimSpace(rec.FullName)
		if rec.RegistrationNumber == "" {
			return nil, fmt.Errorf("seed record %d: registration is required", i)
		}
		if rec.FullName == "" {
			return nil, fmt.Errorf("seed record %s: name is required", rec.RegistrationNumber)
		}
		if !rec.City.IsValid() {
			return nil, fmt.Errorf("seed record %s: unknown city %q", rec.RegistrationNumber, rec.City)
		}
		if _, dup := seen[rec.RegistrationNumber]; dup {
			return nil, fmt.Errorf("seed record %s: duplicate registration", rec.RegistrationNumber)
		}
		seen[rec.RegistrationNumber] = struct{}{}
		out = append(out, rec)
	}
	return out, nil
}
