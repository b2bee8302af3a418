package literal

import (
	"context"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/rdf-literal-go/literal/internal/overflow"
)

type apdContextKey struct{}

// WithAPDContext sets the apd.Context used for decimal operations.
//
// The apd.Context controls precision and rounding of xsd:decimal
// arithmetic. The default keeps 34 significant digits (roughly Decimal128)
// so intermediates have ample headroom.
func WithAPDContext(ctx context.Context, apdContext *apd.Context) context.Context {
	return context.WithValue(ctx, apdContextKey{}, apdContext)
}

const defaultDecimalPrecision uint32 = 34

var defaultAPDContext = apd.BaseContext.WithPrecision(defaultDecimalPrecision)

func apdContext(ctx context.Context) *apd.Context {
	if ctx != nil {
		if apdContext, ok := ctx.Value(apdContextKey{}).(*apd.Context); ok && apdContext != nil {
			return apdContext
		}
	}
	return defaultAPDContext
}

// Tracer receives one call per numeric operation with its operands and
// result, for debugging evaluation pipelines.
type Tracer interface {
	Log(op string, values ...Literal) error
}

type tracerKey struct{}

// WithTracer installs a trace logger consulted by the numeric engine.
func WithTracer(ctx context.Context, tracer Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

func trace(ctx context.Context, op string, values ...Literal) {
	if ctx == nil {
		return
	}
	if tracer, ok := ctx.Value(tracerKey{}).(Tracer); ok && tracer != nil {
		_ = tracer.Log(op, values...)
	}
}

// The engine hard-codes three numeric kinds. Binary operations promote to
// the highest operand kind: integer < decimal < double. xsd:float shares
// the double slot.
type numericKind int

const (
	kindNone numericKind = iota
	kindInteger
	kindDecimal
	kindDouble
)

func kindOf(l Literal) numericKind {
	switch l.datatype {
	case XSDInteger:
		return kindInteger
	case XSDDecimal:
		return kindDecimal
	case XSDDouble, XSDFloat:
		return kindDouble
	}
	return kindNone
}

// numericOperand coerces a raw number or literal into a valid numeric
// literal. Anything else is no operand and the operation has no result.
func numericOperand(v any) (Literal, numericKind, bool) {
	l, ok := asLiteral(v)
	if !ok || l.value == nil {
		return Literal{}, kindNone, false
	}
	k := kindOf(l)
	if k == kindNone {
		return Literal{}, kindNone, false
	}
	return l, k, true
}

func asFloat(l Literal) float64 {
	switch v := l.value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case *apd.Decimal:
		return decimalToFloat(v)
	}
	return math.NaN()
}

// decimalToFloat widens preserving the sign of zero: a decimal whose
// magnitude is zero but whose lexical form carries a minus sign widens to
// IEEE -0.0, which drives the division sign rules.
func decimalToFloat(d *apd.Decimal) float64 {
	f, _ := d.Float64()
	if f == 0 && d.Negative {
		return math.Copysign(0, -1)
	}
	return f
}

func asDecimal(l Literal) *apd.Decimal {
	switch v := l.value.(type) {
	case *apd.Decimal:
		return v
	case int64:
		return apd.New(v, 0)
	}
	return nil
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSubtract
	opMultiply
	opDivide
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSubtract:
		return "subtract"
	case opMultiply:
		return "multiply"
	default:
		return "divide"
	}
}

// Add sums two numeric literals or raw numbers. ok=false is the
// distinguished empty outcome: a non-numeric or invalid operand, or
// integer overflow.
func Add(ctx context.Context, a, b any) (Literal, bool) {
	return binary(ctx, opAdd, a, b)
}

// Subtract computes a minus b with the same outcome semantics as Add.
func Subtract(ctx context.Context, a, b any) (Literal, bool) {
	return binary(ctx, opSubtract, a, b)
}

// Multiply computes a times b with the same outcome semantics as Add.
func Multiply(ctx context.Context, a, b any) (Literal, bool) {
	return binary(ctx, opMultiply, a, b)
}

// Divide computes a over b. Division of two integers produces a decimal.
// A zero decimal or integer divisor yields the empty outcome; a zero
// double divisor yields a signed infinity or NaN per IEEE 754.
func Divide(ctx context.Context, a, b any) (Literal, bool) {
	return binary(ctx, opDivide, a, b)
}

func binary(ctx context.Context, op binaryOp, a, b any) (Literal, bool) {
	la, ka, ok := numericOperand(a)
	if !ok {
		return Literal{}, false
	}
	lb, kb, ok := numericOperand(b)
	if !ok {
		return Literal{}, false
	}

	kind := max(ka, kb)
	var result Literal
	switch {
	case kind == kindDouble:
		result = NewTyped(doubleBinary(op, asFloat(la), asFloat(lb)), XSDDouble)
	case kind == kindInteger && op != opDivide:
		r, ok := integerBinary(op, la.value.(int64), lb.value.(int64))
		if !ok {
			return Literal{}, false
		}
		result = NewTyped(r, XSDInteger)
	default:
		r, ok := decimalBinary(ctx, op, asDecimal(la), asDecimal(lb))
		if !ok {
			return Literal{}, false
		}
		result = NewTyped(r, XSDDecimal)
	}
	trace(ctx, op.String(), la, lb, result)
	return result, true
}

// doubleBinary relies on IEEE 754 for the whole special-value table:
// opposite infinities sum to NaN, zero times infinity is NaN, a nonzero
// value over a signed zero is the correspondingly signed infinity, and
// infinity over infinity is NaN.
func doubleBinary(op binaryOp, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSubtract:
		return a - b
	case opMultiply:
		return a * b
	default:
		return a / b
	}
}

func integerBinary(op binaryOp, a, b int64) (int64, bool) {
	switch op {
	case opAdd:
		return overflow.Add(a, b)
	case opSubtract:
		return overflow.Sub(a, b)
	default:
		return overflow.Mul(a, b)
	}
}

func decimalBinary(ctx context.Context, op binaryOp, a, b *apd.Decimal) (*apd.Decimal, bool) {
	var res apd.Decimal
	var err error
	switch op {
	case opAdd:
		_, err = apdContext(ctx).Add(&res, a, b)
	case opSubtract:
		_, err = apdContext(ctx).Sub(&res, a, b)
	case opMultiply:
		_, err = apdContext(ctx).Mul(&res, a, b)
	default:
		// Decimals have no infinite representation: any zero divisor
		// means no result.
		if b.IsZero() {
			return nil, false
		}
		_, err = apdContext(ctx).Quo(&res, a, b)
	}
	if err != nil {
		return nil, false
	}
	return &res, true
}

// Abs returns the magnitude preserving the datatype. Both infinities map
// to +INF and NaN stays NaN.
func Abs(ctx context.Context, v any) (Literal, bool) {
	l, kind, ok := numericOperand(v)
	if !ok {
		return Literal{}, false
	}
	var result Literal
	switch kind {
	case kindDouble:
		result = NewTyped(math.Abs(l.value.(float64)), l.datatype)
	case kindDecimal:
		var res apd.Decimal
		res.Abs(l.value.(*apd.Decimal))
		result = NewTyped(&res, XSDDecimal)
	default:
		i := l.value.(int64)
		if i < 0 {
			var ok bool
			if i, ok = overflow.Neg(i); !ok {
				return Literal{}, false
			}
		}
		result = NewTyped(i, XSDInteger)
	}
	trace(ctx, "abs", l, result)
	return result, true
}

// Round returns the nearest integral value, with ties rounding toward
// positive infinity: 2.5 rounds to 3 and -2.5 rounds to -2. The datatype
// is preserved and the double special values pass through unchanged.
func Round(ctx context.Context, v any) (Literal, bool) {
	return roundAt(ctx, "round", v, 0)
}

// RoundTo rounds at a shifted position: a positive precision keeps that
// many fractional digits, a negative one rounds at a coarser magnitude
// (e.g. -2 rounds to hundreds). The tie-break matches Round.
func RoundTo(ctx context.Context, v any, precision int) (Literal, bool) {
	return roundAt(ctx, "roundTo", v, precision)
}

func roundAt(ctx context.Context, name string, v any, precision int) (Literal, bool) {
	l, kind, ok := numericOperand(v)
	if !ok {
		return Literal{}, false
	}
	var result Literal
	switch kind {
	case kindDouble:
		f := l.value.(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			result = NewTyped(f, l.datatype)
			break
		}
		shift := math.Pow(10, float64(precision))
		scaled := f * shift
		if math.IsInf(scaled, 0) {
			// the shift overflowed, so the value is already integral at
			// this precision
			result = NewTyped(f, l.datatype)
			break
		}
		// adding 0.5 before flooring would double-round values just below
		// a tie, so compare the fraction against the tie directly
		floor := math.Floor(scaled)
		if scaled-floor >= 0.5 {
			floor++
		}
		result = NewTyped(floor/shift, l.datatype)
	case kindDecimal:
		res, ok := decimalRound(ctx, l.value.(*apd.Decimal), int32(precision))
		if !ok {
			return Literal{}, false
		}
		result = NewTyped(res, XSDDecimal)
	default:
		if precision >= 0 {
			result = l
			break
		}
		res, ok := decimalRound(ctx, apd.New(l.value.(int64), 0), int32(precision))
		if !ok {
			return Literal{}, false
		}
		i, err := res.Int64()
		if err != nil {
			return Literal{}, false
		}
		result = NewTyped(i, XSDInteger)
	}
	trace(ctx, name, l, result)
	return result, true
}

// decimalRound quantizes at the given number of fractional places with the
// toward-positive-infinity tie-break: half away from zero for positive
// values, half toward zero for negative ones.
func decimalRound(ctx context.Context, d *apd.Decimal, places int32) (*apd.Decimal, bool) {
	c := *apdContext(ctx)
	if d.Negative {
		c.Rounding = apd.RoundHalfDown
	} else {
		c.Rounding = apd.RoundHalfUp
	}
	if digits := uint32(d.NumDigits()) + 2; c.Precision < digits {
		c.Precision = digits
	}
	var res apd.Decimal
	if _, err := c.Quantize(&res, d, -places); err != nil {
		return nil, false
	}
	return &res, true
}

// Ceil returns the smallest integral value not less than the input;
// special values pass through unchanged.
func Ceil(ctx context.Context, v any) (Literal, bool) {
	return integral(ctx, "ceil", v)
}

// Floor returns the largest integral value not greater than the input;
// special values pass through unchanged.
func Floor(ctx context.Context, v any) (Literal, bool) {
	return integral(ctx, "floor", v)
}

func integral(ctx context.Context, name string, v any) (Literal, bool) {
	l, kind, ok := numericOperand(v)
	if !ok {
		return Literal{}, false
	}
	up := name == "ceil"
	var result Literal
	switch kind {
	case kindDouble:
		f := l.value.(float64)
		if up {
			result = NewTyped(math.Ceil(f), l.datatype)
		} else {
			result = NewTyped(math.Floor(f), l.datatype)
		}
	case kindDecimal:
		var res apd.Decimal
		var err error
		if up {
			_, err = apdContext(ctx).Ceil(&res, l.value.(*apd.Decimal))
		} else {
			_, err = apdContext(ctx).Floor(&res, l.value.(*apd.Decimal))
		}
		if err != nil {
			return Literal{}, false
		}
		result = NewTyped(&res, XSDDecimal)
	default:
		result = l
	}
	trace(ctx, name, l, result)
	return result, true
}

func numericEqual(a, b Literal) (eq bool, ok bool) {
	cmp, ok, err := numericCmp(a, b)
	if err != nil {
		return false, false
	}
	if !ok {
		// NaN compares unequal to everything, itself included; that is a
		// defined outcome, not an incomparable one.
		return false, true
	}
	return cmp == 0, true
}

func numericCmp(a, b Literal) (cmp int, ok bool, err error) {
	la, ka, okA := numericOperand(a)
	lb, kb, okB := numericOperand(b)
	if !okA || !okB {
		return 0, false, errNotComparable
	}
	if max(ka, kb) == kindDouble {
		x, y := asFloat(la), asFloat(lb)
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, false, nil
		}
		switch {
		case x < y:
			return -1, true, nil
		case x > y:
			return 1, true, nil
		default:
			return 0, true, nil
		}
	}
	return asDecimal(la).Cmp(asDecimal(lb)), true, nil
}
