package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"google.golang.org/genai"

	"closetbuddyapi/engine"
)

// LLMModelName is the GenAI model to use for stylist calls.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

// GoogleStylist talks to Gemini for wardrobe analysis and outfit
// descriptions. Every shortfall (transport, blocked content, malformed
// JSON, missing fields) comes back as an error, the engine owns the
// fallback behavior.
type GoogleStylist struct {
	Model LLMModelName
}

func NewGoogleStylist() *GoogleStylist {
	return &GoogleStylist{Model: Flash25}
}

func (gs *GoogleStylist) newClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
}

func (gs *GoogleStylist) AnalyzeStyle(ctx context.Context, input engine.StyleAnalysisInput) (*engine.StyleAnalysis, error) {
	client, err := gs.newClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("stylist client init: %w", err)
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("stylist input marshal: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, gs.Model.String(), []*genai.Content{
		{Parts: []*genai.Part{{Text: string(payload)}}},
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: `You are a professional fashion stylist. Analyze the wardrobe described by the JSON payload: every item lists its category, colors (hex), occasions and mood tags, optionally followed by the user's favorite colors and style preferences.
Return the following JSON fields:
   - **stylePersonality**: one of "classic", "trendy", "casual", "formal", "eclectic", "minimalist".
   - **dominantThemes**: up to 5 short lowercase theme words describing the wardrobe.
   - **colorPalette**: the hex colors that define this wardrobe, most significant first.
   - **recommendations**: 3 to 5 actionable style suggestions, one sentence each.
   - **confidence**: your confidence in this analysis between 0 and 1.`},
			},
		},
		ResponseSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"stylePersonality": {Type: "string"},
				"dominantThemes":   {Type: "array", Items: &genai.Schema{Type: "string"}},
				"colorPalette":     {Type: "array", Items: &genai.Schema{Type: "string"}},
				"recommendations":  {Type: "array", Items: &genai.Schema{Type: "string"}},
				"confidence":       {Type: "number"},
			},
			Required: []string{"stylePersonality", "dominantThemes", "colorPalette", "recommendations", "confidence"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("stylist analyze call: %w", err)
	}

	var analysis engine.StyleAnalysis
	if err := json.Unmarshal([]byte(result.Text()), &analysis); err != nil {
		return nil, fmt.Errorf("stylist analyze response parse: %w", err)
	}
	if analysis.StylePersonality == "" {
		return nil, fmt.Errorf("stylist analyze response missing stylePersonality")
	}
	if analysis.Confidence <= 0 || analysis.Confidence > 1 {
		return nil, fmt.Errorf("stylist analyze response confidence out of range: %v", analysis.Confidence)
	}
	return &analysis, nil
}

func (gs *GoogleStylist) DescribeOutfit(ctx context.Context, input engine.OutfitDescriptionInput) (*engine.OutfitDescription, error) {
	client, err := gs.newClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("stylist client init: %w", err)
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("stylist input marshal: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, gs.Model.String(), []*genai.Content{
		{Parts: []*genai.Part{{Text: string(payload)}}},
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: `You are a professional fashion stylist. The JSON payload describes one outfit: its items (name, category, hex colors) and the target occasion, season and mood when set.
Return the following JSON fields:
   - **description**: one warm, natural sentence describing the outfit.
   - **styleNotes**: 2 to 4 short notes on what makes the combination work.
   - **occasionFit**: one sentence on where this outfit fits best.
   - **confidence**: your confidence in this outfit between 0 and 1.`},
			},
		},
		ResponseSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"description": {Type: "string"},
				"styleNotes":  {Type: "array", Items: &genai.Schema{Type: "string"}},
				"occasionFit": {Type: "string"},
				"confidence":  {Type: "number"},
			},
			Required: []string{"description", "styleNotes", "occasionFit", "confidence"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("stylist describe call: %w", err)
	}

	var described engine.OutfitDescription
	if err := json.Unmarshal([]byte(result.Text()), &described); err != nil {
		return nil, fmt.Errorf("stylist describe response parse: %w", err)
	}
	if described.Description == "" {
		return nil, fmt.Errorf("stylist describe response missing description")
	}
	if described.Confidence <= 0 || described.Confidence > 1 {
		return nil, fmt.Errorf("stylist describe response confidence out of range: %v", described.Confidence)
	}
	return &described, nil
}
