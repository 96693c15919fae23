package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/binaek/cling"

	"github.com/MinBZK/regelrecht-mvp-sub000/registry"
	"github.com/MinBZK/regelrecht-mvp-sub000/service"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

func addEvaluateCmd(cli *cling.CLI) {
	cli.WithCommand(
		cling.NewCommand("evaluate", evaluateCmd).
			WithDescription("Evaluate one output of a law document read as JSON from stdin"),
	)
}

// evaluateRequest mirrors original_source/packages/engine/src/bin/evaluate.rs's
// EvaluateRequest field-for-field, so the same stdin payload a Rust-built
// evaluate binary accepted still works against this one.
type evaluateRequest struct {
	LawYAML    string         `json:"law_yaml"`
	OutputName string         `json:"output_name"`
	Params     map[string]any `json:"params"`
	Date       string         `json:"date"`
	ExtraLaws  []string       `json:"extra_laws"`
}

type evaluateResponse struct {
	Outputs        map[string]any `json:"outputs,omitempty"`
	ResolvedInputs map[string]any `json:"resolved_inputs,omitempty"`
	Error          string         `json:"error,omitempty"`
}

func evaluateCmd(ctx context.Context, args []string) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return writeEvaluateError(fmt.Sprintf("failed to read stdin: %s", err))
	}

	var request evaluateRequest
	decoder := json.NewDecoder(bytes.NewReader(input))
	if err := decoder.Decode(&request); err != nil {
		return writeEvaluateError(fmt.Sprintf("failed to parse request JSON: %s", err))
	}

	reg := registry.New()
	svc := service.New(reg)

	lawID, err := svc.LoadLaw(request.LawYAML)
	if err != nil {
		return writeEvaluateError(fmt.Sprintf("failed to load law YAML: %s", err))
	}
	for _, extra := range request.ExtraLaws {
		if _, err := svc.LoadLaw(extra); err != nil {
			return writeEvaluateError(fmt.Sprintf("failed to load extra law YAML: %s", err))
		}
	}

	params := make(map[string]value.Value, len(request.Params))
	for k, v := range request.Params {
		params[k] = value.FromAny(v)
	}

	result, err := svc.EvaluateLawOutput(ctx, lawID, request.OutputName, params, request.Date)
	if err != nil {
		return writeEvaluateError(err.Error())
	}

	resp := evaluateResponse{
		Outputs:        exportValues(result.Outputs),
		ResolvedInputs: exportValues(result.ResolvedInputs),
	}
	return writeEvaluateResponse(resp)
}

func exportValues(m map[string]value.Value) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Export()
	}
	return out
}

func writeEvaluateError(msg string) error {
	_ = writeEvaluateResponse(evaluateResponse{Error: msg})
	os.Exit(1)
	return nil
}

func writeEvaluateResponse(resp evaluateResponse) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(resp)
}
