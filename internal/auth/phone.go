package auth

import (
	"regexp"
	"strings"

	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

var mobilePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// NormalizeMobile canonicalizes a phone number: separators are stripped
// and the result must be 10-15 digits with an optional leading +. Clients
// send the number under several field names; the API layer maps the
// aliases, this does the cleanup.
func NormalizeMobile(raw string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").
		Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "mobile number is required")
	}
	if !mobilePattern.MatchString(cleaned) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid mobile number")
	}
	return cleaned, nil
}
