package value

import "github.com/MinBZK/regelrecht-mvp-sub000/rrerr"

// Ordering implements >,<,>=,<= per §4.1/§4.3: defined only when both
// operands coerce to Float; NaN on either side yields false for all
// four, and string ordering is undefined (fails with TypeMismatch).
func Ordering(op Operation, a, b Value) (bool, error) {
	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	if !aok || !bok {
		return false, rrerr.ErrTypeMismatch("numeric", "non-numeric")
	}
	if af != af || bf != bf { // NaN check without importing math twice
		return false, nil
	}
	switch op {
	case GreaterThan:
		return af > bf, nil
	case LessThan:
		return af < bf, nil
	case GreaterThanOrEqual:
		return af >= bf, nil
	case LessThanOrEqual:
		return af <= bf, nil
	default:
		return false, rrerr.ErrInvalidOperation("not an ordering operation: %s", op)
	}
}
