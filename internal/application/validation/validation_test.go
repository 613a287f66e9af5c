package validation_test

import (
	"testing"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/validation"
	"github.com/stretchr/testify/require"
)

func TestStructAcceptsValidProject(t *testing.T) {
	err := validation.Struct(&dto.CreateProjectRequest{Name: "Acme", Slug: "acme-directory"})
	require.NoError(t, err)
}

func TestStructRejectsBadSlug(t *testing.T) {
	err := validation.Struct(&dto.CreateProjectRequest{Name: "Acme", Slug: "Not A Slug!"})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Msg, "lowercase")
}

func TestStructRejectsMissingFields(t *testing.T) {
	err := validation.Struct(&dto.CreateProjectRequest{Slug: "acme"})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Msg, "required")
}

func TestStructRejectsUnknownStatus(t *testing.T) {
	err := validation.Struct(&dto.CreateEntryRequest{Title: "T", Slug: "t", Status: "limbo"})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Msg, "one of")
}

func TestStructRejectsBadSubmissionProjectID(t *testing.T) {
	err := validation.Struct(&dto.SubmitEntryRequest{
		ProjectID: "not-a-uuid",
		Data:      map[string]interface{}{"name": "X"},
	})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
