package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// Generator produces a free-form reply for a chat turn.
type Generator interface {
	Generate(ctx context.Context, message string, prefs Preferences, conv Context) (string, error)
}

// GeminiGenerator asks a Gemini model for replies.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiGenerator creates a generator for the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			TopK:            genai.Ptr[float32](40),
			TopP:            genai.Ptr[float32](0.8),
			MaxOutputTokens: 1000,
		},
	}, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, message string, prefs Preferences, conv Context) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(Prompt(message, prefs, conv), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty reply")
	}
	return text, nil
}

// Prompt frames message for the model, carrying the known preferences and
// the conversation context.
func Prompt(message string, prefs Preferences, conv Context) string {
	var info []string
	if prefs.TripType != "" {
		info = append(info, "Trip type: "+prefs.TripType)
	}
	if prefs.Budget != "" {
		info = append(info, "Budget: "+prefs.Budget)
	}
	if prefs.Duration != "" {
		info = append(info, "Duration: "+prefs.Duration)
	}
	if prefs.TravelStyle != "" {
		info = append(info, "Travel style: "+prefs.TravelStyle)
	}
	if len(prefs.Interests) > 0 {
		info = append(info, "Interests: "+strings.Join(prefs.Interests, ", "))
	}
	if len(conv.MentionedDestinations) > 0 {
		info = append(info, "Mentioned destinations: "+strings.Join(conv.MentionedDestinations, ", "))
	}
	if conv.Phase != "" {
		info = append(info, "Conversation phase: "+string(conv.Phase))
	}
	if conv.LastTopic != "" {
		info = append(info, "Last topic: "+conv.LastTopic)
	}
	contextInfo := "No preferences set yet."
	if len(info) > 0 {
		contextInfo = strings.Join(info, "\n")
	}

	return "You are TRIPZY, an AI travel assistant. Your role is to help users plan their trips and provide travel advice.\n\n" +
		"Current context:\n" + contextInfo + "\n\n" +
		"User message: " + message + "\n\n" +
		"Please provide a helpful response about travel planning, keeping responses friendly and informative."
}
