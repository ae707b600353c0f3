package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateDomain checks a bare host name such as "wa.me" (optionally with a port).
func ValidateDomain(domain string) (bool, string) {
	if domain == "" {
		return false, "domain is required"
	}
	if strings.Contains(domain, "://") || strings.ContainsAny(domain, "/?#@ ") {
		return false, "domain must be a bare host name"
	}
	return ValidateURL("https://" + domain)
}

// FieldError is a single failed field with a readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is returned when struct validation fails.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validator checks request structs against their validate tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports JSON field names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("dialcode", isDialCode)
	_ = v.RegisterValidation("mask", isMask)
	return &Validator{validate: v}
}

// isDialCode accepts a "+" followed by one to four digits.
func isDialCode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	digits, ok := strings.CutPrefix(s, "+")
	if !ok || len(digits) < 1 || len(digits) > 4 {
		return false
	}
	return strings.Trim(digits, "0123456789") == ""
}

// isMask accepts a display mask with at least one "#" slot and no digits.
func isMask(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.Contains(s, "#") && !strings.ContainsAny(s, "0123456789")
}

// Struct validates s. Failures are returned as FieldErrors.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "alpha":
		return "must contain only letters"
	case "uppercase":
		return "must be upper case"
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	case "dialcode":
		return `must be "+" followed by 1 to 4 digits`
	case "mask":
		return `must contain "#" digit slots and no digits`
	default:
		return "is invalid"
	}
}
