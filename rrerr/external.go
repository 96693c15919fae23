package rrerr

import "errors"

// External is the sanitized error surface (§7): category labels only,
// never filesystem paths, article locations, or internal chain
// descriptions. Variable names and law IDs are considered safe to expose.
type External struct {
	Category string
	Detail   string
}

func (e External) Error() string {
	if e.Detail == "" {
		return e.Category
	}
	return e.Category + ": " + e.Detail
}

// Sanitize converts an internal error into the external-safe surface.
// Unrecognized errors collapse to a generic category so no internal
// detail leaks by accident.
func Sanitize(err error) External {
	if err == nil {
		return External{}
	}

	switch {
	case as[LoadError](err):
		return External{Category: "Failed to load law configuration"}
	case as[YamlError](err):
		return External{Category: "Failed to parse law configuration"}
	case as[VariableNotFound](err):
		var e VariableNotFound
		errors.As(err, &e)
		return External{Category: "Variable not found", Detail: e.Name}
	case as[InvalidOperation](err):
		return External{Category: "Invalid operation"}
	case as[TypeMismatch](err):
		return External{Category: "Type mismatch"}
	case as[DivisionByZero](err):
		return External{Category: "Division by zero"}
	case as[ArithmeticOverflow](err):
		return External{Category: "Arithmetic overflow"}
	case as[MaxDepthExceeded](err):
		return External{Category: "Maximum nesting depth exceeded"}
	case as[InvalidUri](err):
		return External{Category: "Invalid reference URI"}
	case as[InvalidDate](err):
		return External{Category: "Invalid date"}
	case as[LawNotFound](err):
		var e LawNotFound
		errors.As(err, &e)
		return External{Category: "Law not found", Detail: e.LawID}
	case as[ArticleNotFound](err):
		return External{Category: "Article not found"}
	case as[OutputNotFound](err):
		var e OutputNotFound
		errors.As(err, &e)
		return External{Category: "Output not found", Detail: e.Output}
	case as[CircularReference](err):
		return External{Category: "Circular reference detected"}
	case as[MissingParameter](err):
		var e MissingParameter
		errors.As(err, &e)
		return External{Category: "Required parameter missing", Detail: e.Name}
	case as[DelegationError](err):
		return External{Category: "Delegation error"}
	case as[DelegationNotResolved](err):
		var e DelegationNotResolved
		errors.As(err, &e)
		return External{Category: "Delegation not resolved", Detail: e.InputName}
	case as[ExternalReferenceNotResolved](err):
		var e ExternalReferenceNotResolved
		errors.As(err, &e)
		return External{Category: "External reference not resolved", Detail: e.InputName}
	default:
		return External{Category: "Internal error"}
	}
}

func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
