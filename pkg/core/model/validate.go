package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation bounds. Beneficiaries must be elderly (60+) and the birth date
// sanity check rejects implausible ages above 120.
const (
	MinBeneficiaryAge    = 60
	MaxBeneficiaryAge    = 120
	MinDescriptionLength = 20
	DefaultMinMotivation = 30
)

var (
	// nationalIDPattern matches a Chilean RUT, e.g. 12345678-9 or 1234567-K.
	nationalIDPattern = regexp.MustCompile(`^\d{7,8}-[\dkK]$`)

	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

func validRole(role string) bool {
	return role == RoleRequester || role == RoleVolunteer
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidateUser checks a user record before it is persisted.
func ValidateUser(u *User) error {
	if strings.TrimSpace(u.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if !validRole(u.Role) {
		return &ValidationError{Field: "role", Reason: fmt.Sprintf("must be %s or %s", RoleRequester, RoleVolunteer)}
	}
	if u.Phone != "" && !phonePattern.MatchString(u.Phone) {
		return &ValidationError{Field: "phone", Reason: "must be a valid phone number"}
	}
	return nil
}

// ValidateBeneficiary checks a beneficiary record before it is persisted.
// The age bound is computed from the birth date at the given time.
func ValidateBeneficiary(b *Beneficiary, now time.Time) error {
	if !nationalIDPattern.MatchString(b.NationalID) {
		return &ValidationError{Field: "national_id", Reason: "must match the format 12345678-9"}
	}
	if strings.TrimSpace(b.FirstName) == "" {
		return &ValidationError{Field: "first_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(b.LastName) == "" {
		return &ValidationError{Field: "last_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(b.Address) == "" {
		return &ValidationError{Field: "address", Reason: "must not be empty"}
	}
	if b.Phone != "" && !phonePattern.MatchString(b.Phone) {
		return &ValidationError{Field: "phone", Reason: "must be a valid phone number"}
	}
	age := b.AgeAt(now)
	if age < MinBeneficiaryAge {
		return &ValidationError{
			Field:  "birth_date",
			Reason: fmt.Sprintf("beneficiary must be %d or older (computed age: %d)", MinBeneficiaryAge, age),
		}
	}
	if age > MaxBeneficiaryAge {
		return &ValidationError{
			Field:  "birth_date",
			Reason: fmt.Sprintf("computed age %d is implausible, check the birth date", age),
		}
	}
	return nil
}

// ValidateRequestFields checks the writable fields of a request. The
// deadline, when present, must not be in the past.
func ValidateRequestFields(title, description, helpType, priority string, deadline *time.Time, now time.Time) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(strings.TrimSpace(description)) < MinDescriptionLength {
		return &ValidationError{
			Field:  "description",
			Reason: fmt.Sprintf("must be at least %d characters", MinDescriptionLength),
		}
	}
	if strings.TrimSpace(helpType) == "" {
		return &ValidationError{Field: "help_type", Reason: "must not be empty"}
	}
	if !validPriority(priority) {
		return &ValidationError{Field: "priority", Reason: "must be LOW, MEDIUM, HIGH or URGENT"}
	}
	if deadline != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if deadline.Before(today) {
			return &ValidationError{Field: "deadline", Reason: "must not be in the past"}
		}
	}
	return nil
}

// ValidateMotivation checks an application's motivation text against the
// configured minimum length.
func ValidateMotivation(text string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinMotivation
	}
	if len(strings.TrimSpace(text)) < minLength {
		return &ValidationError{
			Field:  "motivation",
			Reason: fmt.Sprintf("must be at least %d characters", minLength),
		}
	}
	return nil
}

// ValidateMessageBody checks that a chat message has content.
func ValidateMessageBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return &ValidationError{Field: "body", Reason: "must not be empty"}
	}
	return nil
}
