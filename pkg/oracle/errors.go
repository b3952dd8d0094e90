// Package oracle holds the domain vocabulary of the fortune-telling pipeline:
// the stage-tagged error type and the host-side dialogue policy.
package oracle

import (
	"errors"
	"fmt"
)

// Stage identifies which pipeline component an error originated from. The tag
// is preserved all the way to the HTTP boundary so operators can tell an
// extraction failure from a generation failure.
type Stage string

const (
	StageExtraction     Stage = "extraction"
	StageFortune        Stage = "fortune_generation"
	StageHandprint      Stage = "handprint_analysis"
	StageRecommendation Stage = "product_recommendation"
	StageWorkflow       Stage = "workflow"
)

// Error is the single domain error type. Every component failure is wrapped
// with its stage; the orchestrator keeps the original stage when rewrapping.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a stage-tagged error from a format string.
func Errorf(stage Stage, format string, args ...any) *Error {
	return &Error{Stage: stage, Err: fmt.Errorf(format, args...)}
}

// Wrap tags err with stage. A nil err returns nil; an already-tagged error
// keeps its original stage.
func Wrap(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var oe *Error
	if errors.As(err, &oe) {
		return err
	}
	return &Error{Stage: stage, Err: err}
}

// StageOf reports the originating stage of err, if it carries one.
func StageOf(err error) (Stage, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Stage, true
	}
	return "", false
}
