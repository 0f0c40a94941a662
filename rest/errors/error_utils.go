package errors

import (
	"errors"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// TranslateValidatorError converts the errors of the go-playground validator
// into a single error holding the translated messages. Messages are sorted so
// the description does not depend on map order.
func TranslateValidatorError(err error, trans ut.Translator) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	translated := validationErrs.Translate(trans)
	messages := make([]string, 0, len(translated))
	for _, message := range translated {
		messages = append(messages, message)
	}
	sort.Strings(messages)

	return errors.New(strings.Join(messages, " "))
}
