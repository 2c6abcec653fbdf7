package services

import (
	"regexp"
	"strings"

	"taskapp/model"
)

type Reason string

const (
	ReasonEmpty     Reason = "empty"
	ReasonMalformed Reason = "malformed"
	ReasonTooShort  Reason = "too_short"
	ReasonMismatch  Reason = "mismatch"
)

// ValidationError reports the first failed check for a form field.
type ValidationError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: ReasonEmpty, Message: "Email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: ReasonMalformed, Message: "Enter a valid email"}
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Reason: ReasonEmpty, Message: "Password is required"}
	}
	if len(password) < 6 {
		return &ValidationError{Field: "password", Reason: ReasonTooShort, Message: "Password must be at least 6 characters"}
	}
	return nil
}

func ValidateConfirmPassword(password, confirm string) error {
	if confirm == "" {
		return &ValidationError{Field: "confirmPassword", Reason: ReasonEmpty, Message: "Please confirm your password"}
	}
	if password != confirm {
		return &ValidationError{Field: "confirmPassword", Reason: ReasonMismatch, Message: "Passwords do not match"}
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Reason: ReasonEmpty, Message: "Username is required"}
	}
	if len(username) < 3 {
		return &ValidationError{Field: "username", Reason: ReasonTooShort, Message: "Username must be at least 3 characters"}
	}
	return nil
}

func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: ReasonEmpty, Message: "Please enter task title"}
	}
	return nil
}

func ValidateTaskPriority(priority model.Priority) error {
	if priority == "" {
		return &ValidationError{Field: "priority", Reason: ReasonEmpty, Message: "Please select task priority"}
	}
	switch priority {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		return nil
	}
	return &ValidationError{Field: "priority", Reason: ReasonMalformed, Message: "Priority must be High, Medium or Low"}
}
