package value

import (
	"math"

	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
)

// Arithmetic result typing per §4.1: Int op Int stays Int (checked for
// overflow) unless the operation is Divide; any Float operand, or
// Divide itself, produces a Float.

func Arith(op Operation, a, b Value) (Value, error) {
	switch op {
	case Add:
		return arithAdd(a, b)
	case Subtract:
		return arithSubtract(a, b)
	case Multiply:
		return arithMultiply(a, b)
	case Divide:
		return arithDivide(a, b)
	default:
		return Null(), rrerr.ErrInvalidOperation("not an arithmetic operation: %s", op)
	}
}

func bothInt(a, b Value) (int64, int64, bool) {
	if a.kind == KindInt && b.kind == KindInt {
		return a.i, b.i, true
	}
	return 0, 0, false
}

func numericOperands(a, b Value) (float64, float64, bool) {
	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	return af, bf, aok && bok
}

func arithAdd(a, b Value) (Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		sum := ai + bi
		if (bi > 0 && sum < ai) || (bi < 0 && sum > ai) {
			return Null(), rrerr.ErrArithmeticOverflow("%d + %d overflows int64", ai, bi)
		}
		return Int(sum), nil
	}
	af, bf, ok := numericOperands(a, b)
	if !ok {
		return Null(), rrerr.ErrTypeMismatch("numeric", "non-numeric")
	}
	return Float(af + bf), nil
}

func arithSubtract(a, b Value) (Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		diff := ai - bi
		if (bi < 0 && diff < ai) || (bi > 0 && diff > ai) {
			return Null(), rrerr.ErrArithmeticOverflow("%d - %d overflows int64", ai, bi)
		}
		return Int(diff), nil
	}
	af, bf, ok := numericOperands(a, b)
	if !ok {
		return Null(), rrerr.ErrTypeMismatch("numeric", "non-numeric")
	}
	return Float(af - bf), nil
}

func arithMultiply(a, b Value) (Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		if ai == 0 || bi == 0 {
			return Int(0), nil
		}
		product := ai * bi
		if product/bi != ai {
			return Null(), rrerr.ErrArithmeticOverflow("%d * %d overflows int64", ai, bi)
		}
		return Int(product), nil
	}
	af, bf, ok := numericOperands(a, b)
	if !ok {
		return Null(), rrerr.ErrTypeMismatch("numeric", "non-numeric")
	}
	return Float(af * bf), nil
}

// arithDivide always returns Float, per §4.1/§4.3. A zero divisor (Int(0)
// or Float(0.0)) fails with DivisionByZero; a NaN divisor fails with
// InvalidOperation rather than silently propagating NaN.
func arithDivide(a, b Value) (Value, error) {
	af, bf, ok := numericOperands(a, b)
	if !ok {
		return Null(), rrerr.ErrTypeMismatch("numeric", "non-numeric")
	}
	if math.IsNaN(bf) {
		return Null(), rrerr.ErrInvalidOperation("cannot divide by NaN")
	}
	if bf == 0 {
		return Null(), rrerr.ErrDivisionByZero()
	}
	return Float(af / bf), nil
}

// Aggregate computes MAX/MIN over a non-empty list of values, per §4.3:
// coerce to Float, return the extremum as Float, or as Int if every
// operand was an Int.
func Aggregate(op Operation, values []Value) (Value, error) {
	if len(values) == 0 {
		return Null(), rrerr.ErrInvalidOperation("%s requires a non-empty values list", op)
	}
	allInt := true
	best, ok := values[0].AsFloat()
	if !ok {
		return Null(), rrerr.ErrTypeMismatch("numeric", values[0].Kind().String())
	}
	if values[0].kind != KindInt {
		allInt = false
	}
	for _, v := range values[1:] {
		f, ok := v.AsFloat()
		if !ok {
			return Null(), rrerr.ErrTypeMismatch("numeric", v.Kind().String())
		}
		if v.kind != KindInt {
			allInt = false
		}
		switch op {
		case Max:
			if f > best {
				best = f
			}
		case Min:
			if f < best {
				best = f
			}
		default:
			return Null(), rrerr.ErrInvalidOperation("not an aggregate operation: %s", op)
		}
	}
	if allInt {
		return Int(int64(best)), nil
	}
	return Float(best), nil
}
