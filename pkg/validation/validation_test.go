package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "carteira/pkg/domain-errors"
)

type form struct {
	FullName string `label:"Nome completo" validate:"notblank"`
	School   string `label:"Nome da escola" validate:"required"`
	Photo    []byte `label:"Foto" validate:"required"`
	Delivery string `label:"Envio" validate:"omitempty,oneof=download email"`
	Email    string `label:"E-mail" validate:"required_if=Delivery email,omitempty,email,max=255"`
}

type ValidationSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) TestReportsEveryMissingLabelInOrder() {
	err := Validate(form{FullName: "   "})

	var domainErr *dErrors.Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal(dErrors.CodeMissingFields, domainErr.Code)
	s.Equal([]string{"Nome completo", "Nome da escola", "Foto"}, domainErr.Fields)
	s.Equal("Campos obrigatórios: Nome completo, Nome da escola, Foto", domainErr.Message)
}

func (s *ValidationSuite) TestSingleMissingField() {
	err := Validate(form{FullName: "Maria", School: "E. E. Central", Photo: []byte{1}, Delivery: "email"})

	var domainErr *dErrors.Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal([]string{"E-mail"}, domainErr.Fields)
	s.Equal("Campo obrigatório: E-mail", domainErr.Message)
}

func (s *ValidationSuite) TestFormatFailureIsValidationError() {
	err := Validate(form{FullName: "Maria", School: "X", Photo: []byte{1}, Delivery: "email", Email: "not-an-email"})

	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(err.Error(), "E-mail deve ser um e-mail válido")
}

func (s *ValidationSuite) TestValidForm() {
	s.NoError(Validate(form{FullName: "Maria", School: "X", Photo: []byte{1}, Delivery: "download"}))
}

func (s *ValidationSuite) TestLimits() {
	s.Run("byte size at max passes", func() {
		s.NoError(CheckByteSize("Foto", MaxPhotoBytes, MaxPhotoBytes))
	})
	s.Run("byte size over max is payload too big", func() {
		err := CheckByteSize("Foto", MaxPhotoBytes+1, MaxPhotoBytes)
		s.True(dErrors.HasCode(err, dErrors.CodePayloadTooBig))
	})
}
