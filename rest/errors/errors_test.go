package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewBadRequestError("invalid id")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("post 1 not found")))
	assert.Equal(t, http.StatusConflict, StatusCode(NewConflictError("duplicate")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(NewInternalError("failed")))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("wrapped: %w", NewNotFoundError("missing"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("plain")))
}

func TestTranslateValidatorError(t *testing.T) {
	validate := validator.New()
	trans, _ := ut.New(en.New(), en.New()).GetTranslator("en")
	assert.NoError(t, enTranslations.RegisterDefaultTranslations(validate, trans))

	payload := struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}{}

	err := TranslateValidatorError(validate.Struct(payload), trans)
	assert.EqualError(t, err, "Email is a required field Name is a required field")

	other := fmt.Errorf("not a validation error")
	assert.Equal(t, other, TranslateValidatorError(other, trans))
}
