package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxPhoneLength = 32

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidEmail = errors.New("a valid email address is required")
	ErrPhoneTooLong = errors.New("phone number is too long")
)

// WaitlistEntry is a signup from the marketing site.
type WaitlistEntry struct {
	ID        string
	Name      string
	Email     string
	Phone     string // optional
	CreatedAt int64
}

// NewWaitlistEntry validates a signup. Email is lower-cased so that
// uniqueness is case-insensitive.
func NewWaitlistEntry(name, email, phone string) (*WaitlistEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return nil, ErrInvalidEmail
	}

	phone = strings.TrimSpace(phone)
	if len(phone) > maxPhoneLength {
		return nil, ErrPhoneTooLong
	}

	return &WaitlistEntry{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.ToLower(addr.Address),
		Phone:     phone,
		CreatedAt: time.Now().Unix(),
	}, nil
}
