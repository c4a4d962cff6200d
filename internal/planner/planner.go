// Package planner answers travel-planning chat messages.
//
// Replies come from an ordered rule table keyed on the message text, the
// user's trip preferences and the conversation context. When a Generator is
// configured it is asked first, and the rule table answers whenever the
// generator fails.
package planner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

// Reply is the planner's answer to one message.
type Reply struct {
	Text     string
	Category Category
	// Context is the updated conversation context to send with the next message.
	Context Context
}

// Planner is safe for concurrent use; it keeps no per-conversation state.
type Planner struct {
	generator Generator
	logger    *slog.Logger
}

// New creates a planner. generator may be nil, in which case only the rule
// table answers.
func New(generator Generator, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{generator: generator, logger: logger}
}

// Chat answers message. The context is updated from the message before the
// reply is chosen.
func (p *Planner) Chat(ctx context.Context, message string, prefs Preferences, conv Context) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	next := UpdateContext(message, conv)

	if p.generator != nil {
		text, err := p.generator.Generate(ctx, message, prefs, next)
		if err == nil {
			return Reply{Text: text, Category: CategoryGenerated, Context: next}, nil
		}
		p.logger.Warn("Generator failed, using rule responder", "error", err)
	}

	text, category := Respond(message, prefs, next)
	return Reply{Text: text, Category: category, Context: next}, nil
}
