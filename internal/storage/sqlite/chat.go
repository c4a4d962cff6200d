package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/tripzy/internal/models"
)

// AddChatMember adds a member to the trip's chat.
func (s *SQLiteStore) AddChatMember(ctx context.Context, member *models.ChatMember) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_members (id, trip_id, name, avatar, role, joined_at) VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.TripID, member.Name, member.Avatar, member.Role, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat member: %w", err)
	}
	return nil
}

// RemoveChatMember removes a member from the trip's chat.
func (s *SQLiteStore) RemoveChatMember(ctx context.Context, tripID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM chat_members WHERE id = ? AND trip_id = ?", memberID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete chat member: %w", err)
	}
	return mustAffect(res, "chat member", memberID)
}

// ListChatMembers returns the chat's members in the order they joined.
func (s *SQLiteStore) ListChatMembers(ctx context.Context, tripID string) ([]*models.ChatMember, error) {
	var rows []chatMemberRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, trip_id, name, avatar, role FROM chat_members
		 WHERE trip_id = ? ORDER BY joined_at, id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat members: %w", err)
	}

	members := make([]*models.ChatMember, len(rows))
	for i, r := range rows {
		members[i] = &models.ChatMember{
			ID:     r.ID,
			TripID: r.TripID,
			Name:   r.Name,
			Avatar: r.Avatar,
			Role:   r.Role,
		}
	}
	return members, nil
}

// AddChatMessage stores a message.
func (s *SQLiteStore) AddChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_messages (id, trip_id, sender, text, sent_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.TripID, msg.Sender, msg.Text, msg.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// ListChatMessages returns the chat history, oldest first.
func (s *SQLiteStore) ListChatMessages(ctx context.Context, tripID string) ([]*models.ChatMessage, error) {
	var rows []chatMessageRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, trip_id, sender, text, sent_at FROM chat_messages
		 WHERE trip_id = ? ORDER BY sent_at, id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	messages := make([]*models.ChatMessage, len(rows))
	for i, r := range rows {
		messages[i] = &models.ChatMessage{
			ID:     r.ID,
			TripID: r.TripID,
			Sender: r.Sender,
			Text:   r.Text,
			SentAt: r.SentAt,
		}
	}
	return messages, nil
}
