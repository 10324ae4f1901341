package credential

import (
	"strings"

	"carteira/internal/credential/delivery"
	"carteira/internal/registration"
	"carteira/pkg/text"
	"carteira/pkg/validation"
)

// Submission is the issuance form. Field order is the order missing
// fields are reported in.
type Submission struct {
	FullName           string `label:"Nome completo" validate:"notblank,max=200"`
	BirthDate          string `label:"Data de nascimento" validate:"notblank,datetime=2006-01-02"`
	Institution        string `label:"Nome da escola" validate:"notblank,max=200"`
	GradeLevel         string `label:"Nível de ensino" validate:"notblank,max=200"`
	Course             string `label:"Nome do curso" validate:"notblank,max=200"`
	RegistrationNumber string `label:"Número de matrícula" validate:"notblank"`
	ContactInfo        string `label:"Informações de contato" validate:"notblank,max=255"`
	City               string `label:"Cidade" validate:"notblank"`
	TransportType      string `label:"Tipo de transporte" validate:"notblank,max=200"`
	Photo              []byte `label:"Foto" validate:"required"`

	SchoolAddress           string `label:"Endereço da escola" validate:"max=200"`
	RegistrationNumberExtra string `label:"Registro escolar" validate:"max=200"`

	DeliveryMethod delivery.Method `label:"Forma de entrega" validate:"omitempty,oneof=download email"`
	Email          string          `label:"E-mail" validate:"required_if=DeliveryMethod email,omitempty,email,max=255"`
}

// Normalize trims free text and drops an empty photo upload.
func (s *Submission) Normalize() {
	text.TrimStrings(&s.FullName, &s.BirthDate, &s.Institution, &s.GradeLevel, &s.Course,
		&s.RegistrationNumber, &s.ContactInfo, &s.City, &s.TransportType,
		&s.SchoolAddress, &s.RegistrationNumberExtra, &s.Email)
	s.FullName = text.CollapseSpaces(s.FullName)
	s.Email = strings.ToLower(s.Email)
	s.DeliveryMethod = delivery.Method(strings.ToLower(strings.TrimSpace(string(s.DeliveryMethod))))
	if len(s.Photo) == 0 {
		s.Photo = nil
	}
}

func (s *Submission) Validate() error {
	return validation.Validate(s)
}

// prefill marks directory-sourced fields as present. The caller's city is
// replaced by the one derived from the registration number.
func (s *Submission) prefill(r *registration.ResolvedStudent) {
	if r.FullName != "" {
		s.FullName = r.FullName
	}
	if r.Institution != "" {
		s.Institution = r.Institution
	}
	if r.Course != "" {
		s.Course = r.Course
	}
	s.City = r.City.String()
	if s.TransportType == "" && r.TransportLocked {
		s.TransportType = r.TransportType
	}
}

func (s *Submission) callerFields() registration.CallerFields {
	return registration.CallerFields{
		FullName:                s.FullName,
		Institution:             s.Institution,
		Course:                  s.Course,
		BirthDate:               s.BirthDate,
		SchoolAddress:           s.SchoolAddress,
		ContactInfo:             s.ContactInfo,
		GradeLevel:              s.GradeLevel,
		TransportType:           s.TransportType,
		RegistrationNumberExtra: s.RegistrationNumberExtra,
		Photo:                   s.Photo,
	}
}
