package domain

import (
	"strings"
	"time"
)

const minPasswordLength = 5

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}

// ValidateCredentials checks the raw input of a registration.
func ValidateCredentials(username, email, password string) error {
	errs := profileErrors(username, email)
	if len(password) < minPasswordLength {
		errs.add("password", "ensure this field has at least 5 characters")
	}
	return errs.err(ErrInvalidField)
}

// ValidateProfile checks a profile update that keeps the current password.
func ValidateProfile(username, email string) error {
	return profileErrors(username, email).err(ErrInvalidField)
}

func profileErrors(username, email string) fieldErrors {
	errs := fieldErrors{}
	errs.required("username", username)
	errs.maxLen("username", username, 150)
	if email != "" && !strings.Contains(email, "@") {
		errs.add("email", "enter a valid email address")
	}
	return errs
}
