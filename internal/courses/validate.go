package courses

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rollbook-dev/rollbook/internal/model"
)

var validate = validator.New()

// Validate checks a course code is 6-10 alphanumeric characters and the name is set.
func Validate(c model.Course) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid course %q: field %s failed %q", c.Code, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid course %q: %w", c.Code, err)
}

// ValidCode reports whether code is a well-formed course code.
func ValidCode(code string) bool {
	return validate.Var(code, "required,alphanum,min=6,max=10") == nil
}
