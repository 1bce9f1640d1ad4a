package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestValidationErrors_MatchesSentinel(t *testing.T) {
	var v apperrors.ValidationErrors
	assert.NoError(t, v.OrNil())

	v.Add("items[0].weight", "must be greater than 0")
	err := fmt.Errorf("create: %w", v.OrNil())

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, []apperrors.FieldError{{Field: "items[0].weight", Message: "must be greater than 0"}}, []apperrors.FieldError(apperrors.Details(err)))
	assert.Contains(t, err.Error(), "items[0].weight: must be greater than 0")
}

func TestAppError_Unwrap(t *testing.T) {
	err := apperrors.NewAppError(409, "invoice number taken", apperrors.ErrConflict)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "invoice number taken: conflict", err.Error())

	bare := apperrors.NewAppError(500, "boom", nil)
	assert.Equal(t, "boom", bare.Error())
	assert.Nil(t, apperrors.Details(bare))
}
