package models

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	RoleOrganizer = "Organizer"
	RoleMember    = "Member"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatMember is a participant of a trip's group chat.
type ChatMember struct {
	ID     string
	TripID string
	Name   string
	Avatar string // initials
	Role   string
}

// ChatMessage is one message posted to a trip's group chat.
type ChatMessage struct {
	ID     string
	TripID string
	Sender string
	Text   string
	SentAt int64
}

// NewChatMember creates a chat member. The first member of a chat organizes it.
func NewChatMember(tripID, name string, first bool) (*ChatMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	role := RoleMember
	if first {
		role = RoleOrganizer
	}
	return &ChatMember{
		ID:     uuid.New().String(),
		TripID: tripID,
		Name:   name,
		Avatar: Initials(name),
		Role:   role,
	}, nil
}

// NewChatMessage creates a message from sender. Text is kept verbatim but
// must contain something other than whitespace.
func NewChatMessage(tripID, sender, text string) (*ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &ChatMessage{
		ID:     id.String(),
		TripID: tripID,
		Sender: sender,
		Text:   text,
		SentAt: time.Now().Unix(),
	}, nil
}

// Initials returns the upper-cased first letter of every word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
