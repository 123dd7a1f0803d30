package domain

import "github.com/go-playground/validator/v10"

var fieldValidator = validator.New()

// Validate runs the field-level invariants on the entity: well-formed email,
// minimum password length, role enumeration membership. The password check
// applies to the plaintext staged for hashing; a stored bcrypt hash always
// exceeds the minimum, so unchanged passwords pass untouched.
func (u *User) Validate() error {
	var errs ValidationErrors

	if fieldValidator.Var(u.Email, "required,email") != nil {
		errs = append(errs, FieldError{Field: "email", Message: "must be a well-formed email address"})
	}
	if len(u.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if !u.Role.Valid() {
		errs = append(errs, FieldError{Field: "role", Message: "must be one of ADMIN, USER"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
