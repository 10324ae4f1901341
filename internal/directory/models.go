package directory

import (
	"context"
	"errors"
)

// City identifies one of the destination cities served by the transit program.
type City string

const (
	CityUberaba      City = "uberaba"
	CityUberlandia   City = "uberlandia"
	CityMonteCarmelo City = "monte-carmelo"
)

// Cities lists every known city in display order.
var Cities = []City{CityMonteCarmelo, CityUberaba, CityUberlandia}

// IsValid reports whether c is a known city key.
func (c City) IsValid() bool {
	switch c {
	case CityUberaba, CityUberlandia, CityMonteCarmelo:
		return true
	}
	return false
}

func (c City) String() string { return string(c) }

// ErrNotFound is returned by Repository.Lookup when no record exists.
var ErrNotFound = errors.New("student record not found")

// StudentRecord is the authoritative directory entry for an enrolled student.
// TransportProviders, when non-empty, is the record-specific provider
// assignment and takes precedence over any city default.
type StudentRecord struct {
	RegistrationNumber string   `yaml:"registration" json:"registration_number"`
	FullName           string   `yaml:"name" json:"full_name"`
	CPF                string   `yaml:"cpf" json:"cpf,omitempty"`
	RG                 string   `yaml:"rg" json:"rg,omitempty"`
	Institution        string   `yaml:"institution" json:"institution"`
	Course             string   `yaml:"course" json:"course,omitempty"`
	City               City     `yaml:"city" json:"city"`
	TransportProviders []string `yaml:"transport" json:"transport_providers,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate shared records.
func (r *StudentRecord) Clone() *StudentRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.TransportProviders != nil {
		c.TransportProviders = append([]string(nil), r.TransportProviders...)
	}
	return &c
}

// Repository is the read-only student directory.
// Error Contract:
// - Lookup returns ErrNotFound when the registration has no record
// - Other errors are infrastructure failures
type Repository interface {
	Lookup(ctx context.Context, registration string) (*StudentRecord, error)
}
