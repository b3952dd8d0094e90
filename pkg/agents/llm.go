// Package agents implements the fortune-telling pipeline: profile extraction,
// fortune generation, handprint analysis, product recommendation and the
// workflow that sequences them.
package agents

import "context"

// Completer is the text-model surface the agents depend on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStructured(ctx context.Context, prompt string, schemaName string, schema map[string]any) (string, error)
}

// VisionCompleter is the vision-model surface used for handprint analysis.
type VisionCompleter interface {
	CompleteVision(ctx context.Context, prompt string, imageDataURI string) (string, error)
}
