package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"mystica/pkg/models"
	"mystica/pkg/oracle"
)

// extractedInfoSchema constrains the extraction call to the ExtractedInfo
// shape; every field is nullable so the model can decline.
var extractedInfoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"user_name":          map[string]any{"type": []string{"string", "null"}},
		"user_dob":           map[string]any{"type": []string{"string", "null"}},
		"handprint_analysis": map[string]any{"type": []string{"string", "null"}},
	},
	"required":             []string{"user_name", "user_dob", "handprint_analysis"},
	"additionalProperties": false,
}

// Extractor pulls structured profile fields out of free-text messages.
type Extractor struct {
	llm Completer
}

func NewExtractor(llm Completer) *Extractor {
	return &Extractor{llm: llm}
}

// Extract asks the model for newly stated profile fields and merges them into
// the current profile. The caller persists the result.
func (e *Extractor) Extract(ctx context.Context, message string, current models.UserProfile) (models.UserProfile, error) {
	prompt := buildExtractionPrompt(message, current)

	raw, err := e.llm.CompleteStructured(ctx, prompt, "extracted_info", extractedInfoSchema)
	if err != nil {
		return models.UserProfile{}, oracle.Errorf(oracle.StageExtraction, "failed to extract information: %w", err)
	}

	var info models.ExtractedInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return models.UserProfile{}, oracle.Errorf(oracle.StageExtraction, "failed to extract information: %w", err)
	}

	return current.Merge(info), nil
}

func buildExtractionPrompt(message string, profile models.UserProfile) string {
	handprint := "Unknown"
	if profile.HandprintAnalysis != "" {
		handprint = "Known"
	}
	return fmt.Sprintf(
		"Current knowledge: Name: %s, DOB: %s, Handprint Analysis: %s. "+
			"User's latest message: %q. "+
			"Extract 'user_name', 'user_dob'. "+
			"If message is textual handprint analysis, extract as 'handprint_analysis'. "+
			"Output nulls if no new info.",
		orUnknown(profile.Name), orUnknown(profile.DateOfBirth), handprint, message,
	)
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
