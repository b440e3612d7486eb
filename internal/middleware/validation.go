package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies accepted by DecodeAndValidate
const maxBodyBytes = 1 << 20

var (
	validate     *validator.Validate
	queryDecoder *form.Decoder
)

func init() {
	validate = validator.New()

	// Report JSON/query names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	queryDecoder = form.NewDecoder()
	queryDecoder.SetTagName("query")
}

// ValidateRequest checks v against its validate tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate reads a JSON body into v and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// DecodeQueryAndValidate fills v from the query string using its query tags
// and validates it. Unknown parameters are ignored.
func DecodeQueryAndValidate(r *http.Request, v interface{}) error {
	if err := queryDecoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// ValidationError is one rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors lists the rejected fields of a validation or query
// decoding error. Any other error yields nil.
func FormatValidationErrors(err error) []ValidationError {
	var result []ValidationError

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, e := range fieldErrors {
			result = append(result, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
		return result
	}

	var decodeErrors form.DecodeErrors
	if errors.As(err, &decodeErrors) {
		for field := range decodeErrors {
			result = append(result, ValidationError{
				Field:   field,
				Message: "Value has the wrong type",
			})
		}
	}

	return result
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too small"
	case "max":
		return "Value is too large"
	case "oneof":
		return "Value must be one of: " + e.Param()
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
