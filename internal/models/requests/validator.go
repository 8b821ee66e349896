package requests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

func ValidateRequired(fields map[string]string) error {
	var missing []string
	for field, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

func IsValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func IsValidUserName(username string) bool {
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	// Allow alphanumeric, underscore, and hyphen
	re := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	return re.MatchString(username)
}

func IsValidName(name string) bool {
	return len(name) >= 1 && len(name) <= 100
}

// Helper to parse and validate JSON request
func ParseAndValidateJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %v", err)
	}

	if validator, ok := dst.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	return nil
}
