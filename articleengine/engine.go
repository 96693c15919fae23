// Package articleengine implements C5: execution of one article's
// machine_readable.execution section — building a RuleContext,
// installing definitions, running each action in order, and
// collecting outputs. Grounded on original_source's engine.rs,
// adapted from its borrow-based ArticleEngine<'a> (article+law
// references with a lifetime) to a Go value holding the two pointers
// directly, since Go has no borrow checker to enforce the lifetime for
// us — the caller is responsible for keeping the *lawdoc.ArticleBasedLaw
// alive for the engine's lifetime, same as sentrie's own AST-holding
// runtime structs.
package articleengine

import (
	"github.com/MinBZK/regelrecht-mvp-sub000/evaluator"
	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/rulectx"
	"github.com/MinBZK/regelrecht-mvp-sub000/trace"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

// Result is what one article evaluation produces.
type Result struct {
	Outputs       map[string]value.Value
	ResolvedInputs map[string]value.Value
	ArticleNumber string
	LawID         string
	LawUUID       string
}

// Engine executes a single article within its containing law.
type Engine struct {
	article *lawdoc.Article
	law     *lawdoc.ArticleBasedLaw
}

func New(article *lawdoc.Article, law *lawdoc.ArticleBasedLaw) *Engine {
	return &Engine{article: article, law: law}
}

// Evaluate runs every action that produces an output.
func (e *Engine) Evaluate(parameters map[string]value.Value, calculationDate string, tr *trace.Builder) (Result, error) {
	return e.EvaluateOutput(parameters, calculationDate, "", tr)
}

// EvaluateOutput runs only the action producing requestedOutput, or
// every output-producing action when requestedOutput is empty.
func (e *Engine) EvaluateOutput(parameters map[string]value.Value, calculationDate string, requestedOutput string, tr *trace.Builder) (Result, error) {
	return e.EvaluateWithInputs(parameters, nil, calculationDate, requestedOutput, tr)
}

// EvaluateWithInputs is EvaluateOutput, but also seeds the context's
// resolved-inputs tier with values the caller already resolved (cross-law
// references, delegations, data-source lookups) before this article's
// actions run — since the engine itself never resolves those (§4.5/§4.7).
func (e *Engine) EvaluateWithInputs(parameters, resolvedInputs map[string]value.Value, calculationDate string, requestedOutput string, tr *trace.Builder) (Result, error) {
	date, err := rulectx.ParseCalculationDate(calculationDate)
	if err != nil {
		return Result{}, err
	}
	ctx := rulectx.New(parameters, date)

	if defs, ok := e.article.GetDefinitions(); ok {
		ctx.InstallDefinitions(defs)
	}
	for name, v := range resolvedInputs {
		ctx.SetResolvedInput(name, v)
	}

	if err := e.executeActions(ctx, requestedOutput, tr); err != nil {
		return Result{}, err
	}

	return Result{
		Outputs:        ctx.Outputs(),
		ResolvedInputs: ctx.ResolvedInputs(),
		ArticleNumber:  e.article.Number,
		LawID:          e.law.ID,
		LawUUID:        e.law.UUID,
	}, nil
}

func (e *Engine) executeActions(ctx *rulectx.RuleContext, requestedOutput string, tr *trace.Builder) error {
	for _, action := range e.actions() {
		if action.Output == "" {
			continue
		}
		if requestedOutput != "" && action.Output != requestedOutput {
			continue
		}
		v, err := e.evaluateAction(action, ctx, tr)
		if err != nil {
			return err
		}
		ctx.SetOutput(action.Output, v)
	}
	return nil
}

func (e *Engine) actions() []lawdoc.Action {
	exec, ok := e.article.GetExecutionSpec()
	if !ok {
		return nil
	}
	return exec.Actions
}

// evaluateAction mirrors evaluate_action: an action-level operation
// takes priority over a direct value, because when operation is set,
// value/subject are that operation's operands rather than a result in
// their own right.
func (e *Engine) evaluateAction(action lawdoc.Action, ctx *rulectx.RuleContext, tr *trace.Builder) (value.Value, error) {
	if action.HasOperation() {
		op := actionToOperation(action)
		return evaluator.EvaluateOperation(op, ctx, tr, 0)
	}
	if action.Value != nil {
		return evaluator.Evaluate(*action.Value, ctx, tr, 0)
	}
	if action.Resolve != nil {
		return value.Null(), rrerr.ErrInvalidOperation("action-level resolve is not supported; the service resolves cross-law inputs before article evaluation")
	}
	return value.Null(), nil
}

// actionToOperation adapts an Action's inline operation fields into an
// ActionOperation for the evaluator. Cases/Default are intentionally
// left unset: Action has no such fields, so SWITCH cannot be expressed
// as an inline action-level operation — it must be nested inside
// `value` instead.
func actionToOperation(action lawdoc.Action) *lawdoc.ActionOperation {
	return &lawdoc.ActionOperation{
		Operation:  action.Operation,
		Subject:    action.Subject,
		Value:      action.Value,
		Values:     action.Values,
		When:       action.When,
		Then:       action.Then,
		Else:       action.Else,
		Conditions: action.Conditions,
	}
}
