package literal

import (
	"math"
	"regexp"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// decimalType implements xsd:decimal on top of apd: an arbitrary-precision
// signed decimal with explicit scale. The value representation is an
// *apd.Decimal that is never shared with the caller's input.
type decimalType struct{}

var decimalLexical = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

func (t decimalType) IRI() IRI { return XSDDecimal }

func (t decimalType) Convert(input any) (any, bool) {
	switch v := input.(type) {
	case *apd.Decimal:
		return new(apd.Decimal).Set(v), true
	case apd.Decimal:
		return new(apd.Decimal).Set(&v), true
	case int:
		return apd.New(int64(v), 0), true
	case int64:
		return apd.New(v, 0), true
	case int32:
		return apd.New(int64(v), 0), true
	case float64:
		return floatToDecimal(v)
	case float32:
		return floatToDecimal(float64(v))
	case string:
		return t.parse(v)
	}
	if s, ok := fallbackLexical(input); ok {
		return t.parse(s)
	}
	return nil, false
}

func (t decimalType) parse(s string) (any, bool) {
	if !decimalLexical.MatchString(s) {
		return nil, false
	}
	// "1." and ".5" are in the XSD lexical space but not in apd's input
	// grammar; pad the missing side of the point.
	sign, rest := "", s
	if rest[0] == '+' || rest[0] == '-' {
		sign, rest = s[:1], s[1:]
	}
	if strings.HasPrefix(rest, ".") {
		rest = "0" + rest
	}
	if strings.HasSuffix(rest, ".") {
		rest += "0"
	}
	d, _, err := apd.NewFromString(sign + rest)
	if err != nil {
		return nil, false
	}
	return d, true
}

func floatToDecimal(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return nil, false
	}
	return d, true
}

// CanonicalLexical renders with one integer digit minimum and at least one
// fraction digit, trailing zeros stripped: "1.0", "0.5", never ".5" or
// "1.50". Zero always renders "0.0" regardless of sign.
func (t decimalType) CanonicalLexical(value any) string {
	d := value.(*apd.Decimal)
	if d.IsZero() {
		return "0.0"
	}
	var reduced apd.Decimal
	reduced.Reduce(d)
	s := reduced.Text('f')
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (t decimalType) Cast(l Literal) (Literal, bool) {
	if l.value == nil {
		return Literal{}, false
	}
	switch l.datatype {
	case XSDBoolean:
		if l.value.(bool) {
			return NewTyped(apd.New(10, -1), XSDDecimal), true
		}
		return NewTyped(apd.New(0, -1), XSDDecimal), true
	case XSDDecimal:
		return NewTyped(l.value, XSDDecimal), true
	case XSDString:
		cast := NewTyped(l.value.(string), XSDDecimal)
		if !cast.Valid() {
			return Literal{}, false
		}
		return cast.Canonical(), true
	case XSDDouble, XSDFloat:
		d, ok := floatToDecimal(l.value.(float64))
		if !ok {
			return Literal{}, false
		}
		return NewTyped(d, XSDDecimal), true
	case XSDInteger:
		return NewTyped(apd.New(l.value.(int64), 0), XSDDecimal), true
	}
	return Literal{}, false
}

func (t decimalType) Valid(l Literal) bool {
	_, ok := l.value.(*apd.Decimal)
	return ok
}

func (t decimalType) Equal(a, b Literal) (eq bool, ok bool) {
	return numericEqual(a, b)
}

func (t decimalType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	return numericCmp(a, b)
}
