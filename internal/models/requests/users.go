package requests

import (
	"fmt"
	"strings"

	"orgadmin-service/pkg/roles"
)

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	if err := ValidateRequired(map[string]string{
		"firstName": r.FirstName,
		"lastName":  r.LastName,
		"email":     r.Email,
		"username":  r.Username,
		"password":  r.Password,
		"address":   r.Address,
		"role":      r.Role,
	}); err != nil {
		return err
	}
	if !IsValidName(r.FirstName) {
		return fmt.Errorf("first name must be between 1 and 100 characters")
	}
	if !IsValidName(r.LastName) {
		return fmt.Errorf("last name must be between 1 and 100 characters")
	}
	if !IsValidEmail(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if !IsValidUserName(r.Username) {
		return fmt.Errorf("username must be at least 3 characters and may only contain letters, numbers, hyphens and underscores")
	}
	if !IsValidPassword(r.Password) {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !roles.IsValid(r.Role) {
		return fmt.Errorf("unknown role %q", r.Role)
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(r.Role)
	return nil
}

// UpdateUserRequest carries a partial update. Nil means "not supplied";
// every supplied field is validated with the same rules as creation.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Address   *string `json:"address"`
	Role      *string `json:"role"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.FirstName != nil && !IsValidName(*r.FirstName) {
		return fmt.Errorf("first name must be between 1 and 100 characters")
	}
	if r.LastName != nil && !IsValidName(*r.LastName) {
		return fmt.Errorf("last name must be between 1 and 100 characters")
	}
	if r.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*r.Email))
		if !IsValidEmail(trimmed) {
			return fmt.Errorf("invalid email address")
		}
		r.Email = &trimmed
	}
	if r.Username != nil && !IsValidUserName(*r.Username) {
		return fmt.Errorf("username must be at least 3 characters and may only contain letters, numbers, hyphens and underscores")
	}
	if r.Password != nil && !IsValidPassword(*r.Password) {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		return fmt.Errorf("address is required when supplied")
	}
	if r.Role != nil {
		lowered := strings.ToLower(*r.Role)
		if !roles.IsValid(lowered) {
			return fmt.Errorf("unknown role %q", *r.Role)
		}
		r.Role = &lowered
	}
	return nil
}

// Empty reports whether no field was supplied at all.
func (r *UpdateUserRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Username == nil && r.Password == nil && r.Address == nil && r.Role == nil
}
