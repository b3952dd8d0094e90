package agents_test

import "context"

// fakeLLM is a function-valued stub for the model client.
type fakeLLM struct {
	completeFn      func(prompt string) (string, error)
	structuredFn    func(prompt string, schemaName string) (string, error)
	visionFn        func(prompt string, dataURI string) (string, error)
	completeCalls   int
	structuredCalls int
	visionCalls     int
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.completeCalls++
	if f.completeFn == nil {
		return "", nil
	}
	return f.completeFn(prompt)
}

func (f *fakeLLM) CompleteStructured(_ context.Context, prompt string, schemaName string, _ map[string]any) (string, error) {
	f.structuredCalls++
	if f.structuredFn == nil {
		return "{}", nil
	}
	return f.structuredFn(prompt, schemaName)
}

func (f *fakeLLM) CompleteVision(_ context.Context, prompt string, dataURI string) (string, error) {
	f.visionCalls++
	if f.visionFn == nil {
		return "", nil
	}
	return f.visionFn(prompt, dataURI)
}
