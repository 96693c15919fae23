// Package service implements C7: the ExecutionService that orchestrates
// a cross-law evaluation — selecting the producing article via the
// registry, resolving each declared input (direct parameter, cross-law
// regulation, delegation with defaults fallback, data-source fallback),
// guarding against reference cycles, and memoizing repeated
// (law_id, output_name, effective_params) calls within one top-level
// evaluation. Grounded on original_source's service.rs doc comment and
// bin/evaluate.rs's call shape, and on sentrie's callMemoizePerch /
// refStack idioms (runtime/eval_call.go, runtime/exec_ctx.go) for the
// memoization and cycle-guard mechanics respectively — since the
// filtered original_source/service.rs kept only its doc comment and
// imports, the orchestration body below is assembled from spec.md §4.7's
// numbered procedure rather than transliterated from Rust.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/articleengine"
	"github.com/MinBZK/regelrecht-mvp-sub000/constants"
	"github.com/MinBZK/regelrecht-mvp-sub000/datasource"
	"github.com/MinBZK/regelrecht-mvp-sub000/evaluator"
	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/obs"
	"github.com/MinBZK/regelrecht-mvp-sub000/registry"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/rulectx"
	"github.com/MinBZK/regelrecht-mvp-sub000/trace"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/binaek/perch"
	"github.com/mitchellh/hashstructure/v2"
	"go.opentelemetry.io/otel/codes"
)

// Result is the aggregate outcome of a top-level evaluation.
type Result struct {
	Outputs        map[string]value.Value
	ResolvedInputs map[string]value.Value
	ArticleNumber  string
	LawID          string
	LawUUID        string
}

// Service orchestrates cross-law evaluation over a shared Registry.
type Service struct {
	registry    *registry.Registry
	dataSources *datasource.Registry
}

// New wraps an existing registry. The caller owns the registry's
// lifetime and load/unload calls, per §5: load at startup or during
// controlled reloads, evaluate freely thereafter.
func New(reg *registry.Registry) *Service {
	return &Service{registry: reg, dataSources: datasource.New()}
}

// LoadLaw is a convenience forward to the underlying registry.
func (s *Service) LoadLaw(yamlText string) (string, error) {
	return s.registry.LoadFromYAML(yamlText)
}

func (s *Service) HasLaw(lawID string) bool          { return s.registry.HasLaw(lawID) }
func (s *Service) UnloadLaw(lawID string) bool       { return s.registry.UnloadLaw(lawID) }
func (s *Service) ListLaws() []string                { return s.registry.ListLaws() }
func (s *Service) LawCount() int                     { return s.registry.LawCount() }
func (s *Service) DataSources() *datasource.Registry { return s.dataSources }

type frame struct {
	lawID  string
	output string
}

// callState is scoped to a single top-level EvaluateLawOutput call: the
// active-frame set for cycle detection and the memoization cache both
// only need to outlive that one call.
type callState struct {
	active map[frame]bool
	memo   *perch.Perch[Result]
}

// EvaluateLawOutput is the top-level contract: locate the article
// producing outputName in lawID (version-scoped by date), resolve its
// inputs, run it, and return the aggregate result.
func (s *Service) EvaluateLawOutput(ctx context.Context, lawID, outputName string, params map[string]value.Value, dateStr string) (Result, error) {
	ctx, span := obs.StartEvaluation(ctx, lawID, outputName)
	defer span.End()

	state := &callState{
		active: make(map[frame]bool),
		memo:   perch.New[Result](1 << 20),
	}
	tr := trace.NewBuilder(false)
	result, err := s.evaluateFrame(ctx, lawID, outputName, params, dateStr, state, tr, 0)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

// EvaluateLawOutputTraced is EvaluateLawOutput with tracing enabled,
// returning the trace roots alongside the result.
func (s *Service) EvaluateLawOutputTraced(ctx context.Context, lawID, outputName string, params map[string]value.Value, dateStr string) (Result, []*trace.Node, error) {
	state := &callState{
		active: make(map[frame]bool),
		memo:   perch.New[Result](1 << 20),
	}
	tr := trace.NewBuilder(true)
	result, err := s.evaluateFrame(ctx, lawID, outputName, params, dateStr, state, tr, 0)
	return result, tr.Roots(), err
}

func (s *Service) evaluateFrame(ctx context.Context, lawID, outputName string, params map[string]value.Value, dateStr string, state *callState, tr *trace.Builder, depth int) (Result, error) {
	if depth > constants.MaxCrossLawDepth {
		return Result{}, rrerr.ErrMaxDepthExceeded(depth)
	}

	f := frame{lawID: lawID, output: outputName}
	if state.active[f] {
		return Result{}, rrerr.ErrCircularReference(fmt.Sprintf("%s/%s", lawID, outputName))
	}

	key, err := memoKey(lawID, outputName, params)
	if err != nil {
		return Result{}, err
	}

	state.active[f] = true
	defer delete(state.active, f)

	return state.memo.Get(ctx, key, time.Duration(constants.DefaultMemoizeTTLSeconds)*time.Second, func(ctx context.Context, _ string) (Result, error) {
		done := tr.Push("resolve", outputName, map[string]any{"law_id": lawID})
		defer done()
		result, err := s.evaluateArticle(ctx, lawID, outputName, params, dateStr, state, tr, depth)
		if err != nil {
			tr.SetErr(err)
		}
		tr.Pop()
		return result, err
	})
}

func (s *Service) evaluateArticle(ctx context.Context, lawID, outputName string, params map[string]value.Value, dateStr string, state *callState, tr *trace.Builder, depth int) (Result, error) {
	if !s.registry.HasLaw(lawID) {
		return Result{}, rrerr.ErrLawNotFound(lawID)
	}

	date, err := rulectx.ParseCalculationDate(dateStr)
	if err != nil {
		return Result{}, err
	}

	article, law, ok := s.registry.GetArticleByOutput(lawID, outputName, date, true)
	if !ok {
		if _, ok := s.registry.GetLawForDate(lawID, date, true); !ok {
			return Result{}, rrerr.ErrLawNotFound(lawID)
		}
		return Result{}, rrerr.ErrOutputNotFound(lawID, outputName)
	}

	resolvedInputs := map[string]value.Value{}
	exec, hasExec := article.GetExecutionSpec()
	if hasExec {
		scratch := rulectx.New(params, date)
		for _, input := range exec.Input {
			if _, ok := params[input.Name]; ok {
				continue
			}
			v, err := s.resolveInput(ctx, input, params, dateStr, date, scratch, state, tr, depth)
			if err != nil {
				return Result{}, err
			}
			resolvedInputs[input.Name] = v
		}
	}

	eng := articleengine.New(article, law)
	result, err := eng.EvaluateWithInputs(params, resolvedInputs, dateStr, outputName, tr)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Outputs:        result.Outputs,
		ResolvedInputs: result.ResolvedInputs,
		ArticleNumber:  result.ArticleNumber,
		LawID:          result.LawID,
		LawUUID:        result.LawUUID,
	}, nil
}

func (s *Service) resolveInput(ctx context.Context, input lawdoc.Input, params map[string]value.Value, dateStr string, date time.Time, scratch *rulectx.RuleContext, state *callState, tr *trace.Builder, depth int) (value.Value, error) {
	if input.Source == nil {
		return s.resolveFromDataSource(input.Name, params, tr)
	}

	if input.Source.Regulation != "" {
		forwarded := make(map[string]value.Value, len(input.Source.Parameters))
		for name, av := range input.Source.Parameters {
			v, err := evaluator.Evaluate(av, scratch, tr, 0)
			if err != nil {
				return value.Null(), err
			}
			forwarded[name] = v
		}
		child, err := s.evaluateFrame(ctx, input.Source.Regulation, input.Source.Output, forwarded, dateStr, state, tr, depth+1)
		if err != nil {
			return value.Null(), err
		}
		return child.Outputs[input.Source.Output], nil
	}

	if input.Source.Delegation != nil {
		return s.resolveDelegation(ctx, input, params, dateStr, date, scratch, state, tr, depth)
	}

	return s.resolveFromDataSource(input.Name, params, tr)
}

func (s *Service) resolveDelegation(ctx context.Context, input lawdoc.Input, params map[string]value.Value, dateStr string, date time.Time, scratch *rulectx.RuleContext, state *callState, tr *trace.Builder, depth int) (value.Value, error) {
	del := input.Source.Delegation

	criteria, err := evaluateSelectOn(del.SelectOn, scratch, tr)
	if err != nil {
		return value.Null(), err
	}

	candidate, ok := s.registry.FindDelegatedRegulation(del.LawID, del.Article, criteria, date, true)
	if ok {
		done := tr.Push("resolve", input.Source.Output, map[string]any{"delegation_law": candidate.ID})
		child, err := s.evaluateFrame(ctx, candidate.ID, input.Source.Output, params, dateStr, state, tr, depth+1)
		done()
		tr.Pop()
		if err != nil {
			return value.Null(), err
		}
		return child.Outputs[input.Source.Output], nil
	}

	if v, ok, err := s.resolveDelegationDefaults(del, input.Source.Output, params, dateStr, tr); ok || err != nil {
		return v, err
	}

	return value.Null(), rrerr.ErrDelegationNotResolved(input.Name, del.LawID, del.Article, selectOnNames(del.SelectOn))
}

// resolveDelegationDefaults evaluates a legal_basis_for.defaults block as
// a synthetic article run through the same articleengine path a real
// delegated regulation would use (§9 design note: "reuse the same
// action-evaluation path rather than a parallel code path"), rather than
// hand-rolling a second action evaluator. The candidate legal_basis_for
// entry is matched by Subject == the delegated output name — the
// synthetic article stands in for "whatever regulation would otherwise
// have supplied this subject."
func (s *Service) resolveDelegationDefaults(del *lawdoc.Delegation, outputName string, params map[string]value.Value, dateStr string, tr *trace.Builder) (value.Value, bool, error) {
	grantingLaw, ok := s.registry.GetLaw(del.LawID)
	if !ok {
		return value.Null(), false, nil
	}
	grantingArticle, ok := grantingLaw.FindArticleByNumber(del.Article)
	if !ok {
		return value.Null(), false, nil
	}
	legalBasisFor, ok := grantingArticle.GetLegalBasisFor()
	if !ok {
		return value.Null(), false, nil
	}

	for _, lbf := range legalBasisFor {
		if lbf.Subject != outputName || lbf.Defaults == nil {
			continue
		}
		synthetic := &lawdoc.Article{
			Number: grantingArticle.Number + ".defaults",
			MachineReadable: &lawdoc.MachineReadable{
				Definitions: lbf.Defaults.Definitions,
				Execution: &lawdoc.Execution{
					Output:  []lawdoc.Output{{Name: outputName}},
					Actions: lbf.Defaults.Actions,
				},
			},
		}
		eng := articleengine.New(synthetic, grantingLaw)
		result, err := eng.EvaluateOutput(params, dateStr, outputName, tr)
		if err != nil {
			return value.Null(), true, err
		}
		return result.Outputs[outputName], true, nil
	}
	return value.Null(), false, nil
}

func (s *Service) resolveFromDataSource(inputName string, params map[string]value.Value, tr *trace.Builder) (value.Value, error) {
	m, ok := s.dataSources.Resolve(inputName, params)
	if !ok {
		return value.Null(), rrerr.ErrMissingParameter(inputName)
	}
	done := tr.Push("data_source", inputName, map[string]any{"source_name": m.SourceName, "source_type": m.SourceType})
	tr.SetResult(m.Value)
	done()
	tr.Pop()
	return m.Value, nil
}

func evaluateSelectOn(criteria []lawdoc.SelectOnCriteria, resolver evaluator.Resolver, tr *trace.Builder) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(criteria))
	for _, c := range criteria {
		v, err := evaluator.Evaluate(c.Value, resolver, tr, 0)
		if err != nil {
			return nil, err
		}
		out[c.Name] = v
	}
	return out, nil
}

func selectOnNames(criteria []lawdoc.SelectOnCriteria) string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.Name
	}
	sort.Strings(names)
	return fmt.Sprintf("%v", names)
}

// memoKey hashes the effective call signature (law, output, params) the
// way eval_call.go hashes call arguments, excluding resolved_inputs per
// the spec's "effective_params" wording — resolved inputs are a
// consequence of (law_id, output_name, params), not an independent key.
func memoKey(lawID, outputName string, params map[string]value.Value) (string, error) {
	exported := make(map[string]any, len(params))
	for k, v := range params {
		exported[k] = v.Export()
	}
	h, err := hashstructure.Hash(exported, hashstructure.FormatV2, nil)
	if err != nil {
		return "", rrerr.ErrInvalidOperation("failed to hash memoization key: %s", err)
	}
	return fmt.Sprintf("%s/%s:%d", lawID, outputName, h), nil
}
