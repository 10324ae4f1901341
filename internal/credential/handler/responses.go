package handler

import (
	"carteira/internal/credential"
	"carteira/internal/registration"
)

// LookupResponse prefills the issuance form.
type LookupResponse struct {
	*registration.ResolvedStudent
	Institutions []string `json:"institutions"`
	Issued       bool     `json:"issued"`
}

type EmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toLookupResponse(r *credential.LookupResult) LookupResponse {
	return LookupResponse{
		ResolvedStudent: r.Student,
		Institutions:    r.Institutions,
		Issued:          r.Issued,
	}
}
