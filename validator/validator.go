package validator

import (
	"regexp"
	"strings"

	"github.com/tobibamidele/spotter/errors"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hourRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidateBookingInput checks booking fields locally before any network
// call is made. Blank or malformed fields short-circuit the operation.
func ValidateBookingInput(date, start, end string) error {
	if strings.TrimSpace(date) == "" {
		return errors.NewValidationError("date", "must not be blank")
	}
	if strings.TrimSpace(start) == "" {
		return errors.NewValidationError("start", "must not be blank")
	}
	if strings.TrimSpace(end) == "" {
		return errors.NewValidationError("end", "must not be blank")
	}
	if !dateRe.MatchString(date) {
		return errors.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if !hourRe.MatchString(start) {
		return errors.NewValidationError("start", "must be HH:mm")
	}
	if !hourRe.MatchString(end) {
		return errors.NewValidationError("end", "must be HH:mm")
	}
	return nil
}

// ValidateAlias checks an account alias
func ValidateAlias(alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return errors.NewValidationError("alias", "must not be blank")
	}
	if len(alias) > 64 {
		return errors.NewValidationError("alias", "must be at most 64 characters")
	}
	return nil
}

// ValidateCookieHeader checks that a captured cookie header string has at
// least one well-formed name=value pair.
func ValidateCookieHeader(cookieString string) error {
	for _, part := range strings.Split(cookieString, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] != "" {
			return nil
		}
	}
	return errors.NewValidationError("cookies", "no name=value pairs found")
}
