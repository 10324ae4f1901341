package registration

import (
	"strings"

	"carteira/internal/directory"
	dErrors "carteira/pkg/domain-errors"
)

const MsgTransportNotAllowed = "Tipo de transporte não disponível para esta matrícula"

// ResolvedStudent merges the directory record with the caller's form fields.
// RegistrationNumber, City, FullName, CPF, RG, Institution and Course come
// from the directory and format derivation; ApplySubmission never changes
// them once a record matched.
type ResolvedStudent struct {
	RegistrationNumber Number         `json:"registration_number"`
	City               directory.City `json:"city"`
	FullName           string         `json:"full_name"`
	CPF                string         `json:"cpf,omitempty"`
	RG                 string         `json:"rg,omitempty"`
	Institution        string         `json:"institution"`
	Course             string         `json:"course,omitempty"`

	BirthDate               string `json:"-"`
	SchoolAddress           string `json:"-"`
	ContactInfo             string `json:"-"`
	GradeLevel              string `json:"-"`
	RegistrationNumberExtra string `json:"-"`
	Photo                   []byte `json:"-"`

	TransportType    string   `json:"transport_type,omitempty"`
	TransportOptions []string `json:"transport_options"`
	TransportLocked  bool     `json:"transport_locked"`
}

// CallerFields are the form values a student supplies at issuance time.
// FullName, Institution and Course only fill gaps the record leaves empty.
type CallerFields struct {
	FullName                string
	Institution             string
	Course                  string
	BirthDate               string
	SchoolAddress           string
	ContactInfo             string
	GradeLevel              string
	TransportType           string
	RegistrationNumberExtra string
	Photo                   []byte
}

// ApplySubmission returns a copy of r with the caller's fields merged in.
// A locked transport is kept even when the caller omits it; a choice
// outside the option set is a validation error.
func (r *ResolvedStudent) ApplySubmission(f CallerFields) (*ResolvedStudent, error) {
	out := *r
	out.TransportOptions = append([]string(nil), r.TransportOptions...)

	fillIfEmpty(&out.FullName, f.FullName)
	fillIfEmpty(&out.Institution, f.Institution)
	fillIfEmpty(&out.Course, f.Course)

	out.BirthDate = strings.TrimSpace(f.BirthDate)
	out.SchoolAddress = strings.TrimSpace(f.SchoolAddress)
	out.ContactInfo = strings.TrimSpace(f.ContactInfo)
	out.GradeLevel = strings.TrimSpace(f.GradeLevel)
	out.RegistrationNumberExtra = strings.TrimSpace(f.RegistrationNumberExtra)
	out.Photo = f.Photo

	choice := strings.TrimSpace(f.TransportType)
	switch {
	case out.TransportLocked && choice == "":
		out.TransportType = out.TransportOptions[0]
	case choice == "":
		out.TransportType = ""
	default:
		canonical, ok := matchOption(out.TransportOptions, choice)
		if !ok {
			return nil, dErrors.New(dErrors.CodeValidation, MsgTransportNotAllowed)
		}
		out.TransportType = canonical
	}
	return &out, nil
}

func fillIfEmpty(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = strings.TrimSpace(v)
	}
}
