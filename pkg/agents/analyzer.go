package agents

import (
	"context"

	"mystica/pkg/imaging"
	"mystica/pkg/oracle"
)

// HandprintFallback is the in-character phrase embedded in analysis errors.
const HandprintFallback = "The lines of fate are momentarily obscured for this image."

const handprintPrompt = "You are a mystical palm reader. Analyze this handprint image. " +
	"Provide a short (1-2 sentences), mystical-sounding summary of its key features. " +
	"Be concise and evocative."

// Analyzer reads palm images through a vision-capable model.
type Analyzer struct {
	vision VisionCompleter
}

func NewAnalyzer(vision VisionCompleter) *Analyzer {
	return &Analyzer{vision: vision}
}

// Analyze sends one vision request and returns the evocative summary. The
// caller is responsible for updating profile state with the result.
func (a *Analyzer) Analyze(ctx context.Context, imageBase64 string) (string, error) {
	text, err := a.vision.CompleteVision(ctx, handprintPrompt, imaging.DataURI(imageBase64))
	if err != nil {
		return "", oracle.Errorf(oracle.StageHandprint, "failed to analyze handprint: %v. %s", err, HandprintFallback)
	}
	return text, nil
}
