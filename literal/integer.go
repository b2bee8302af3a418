package literal

import (
	"math"
	"regexp"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// integerType implements xsd:integer as an int64. Arithmetic that would
// overflow yields the empty outcome instead of wrapping.
type integerType struct{}

var integerLexical = regexp.MustCompile(`^[+-]?\d+$`)

func (t integerType) IRI() IRI { return XSDInteger }

func (t integerType) Convert(input any) (any, bool) {
	switch v := input.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case string:
		return t.parse(v)
	}
	if s, ok := fallbackLexical(input); ok {
		return t.parse(s)
	}
	return nil, false
}

func (t integerType) parse(s string) (any, bool) {
	if !integerLexical.MatchString(s) {
		return nil, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return i, true
}

func (t integerType) CanonicalLexical(value any) string {
	return strconv.FormatInt(value.(int64), 10)
}

func (t integerType) Cast(l Literal) (Literal, bool) {
	if l.value == nil {
		return Literal{}, false
	}
	switch l.datatype {
	case XSDBoolean:
		if l.value.(bool) {
			return NewTyped(int64(1), XSDInteger), true
		}
		return NewTyped(int64(0), XSDInteger), true
	case XSDInteger:
		return NewTyped(l.value, XSDInteger), true
	case XSDString:
		cast := NewTyped(l.value.(string), XSDInteger)
		if !cast.Valid() {
			return Literal{}, false
		}
		return cast.Canonical(), true
	case XSDDecimal:
		// truncate toward zero
		var integ, frac apd.Decimal
		l.value.(*apd.Decimal).Modf(&integ, &frac)
		i, err := integ.Int64()
		if err != nil {
			return Literal{}, false
		}
		return NewTyped(i, XSDInteger), true
	case XSDDouble, XSDFloat:
		f := l.value.(float64)
		// the upper bound must be exclusive at 2^63: MaxInt64 rounds up
		// when converted to float64, so testing f > MaxInt64 lets 2^63
		// through and the conversion wraps negative
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.Ldexp(1, 63) {
			return Literal{}, false
		}
		return NewTyped(int64(math.Trunc(f)), XSDInteger), true
	}
	return Literal{}, false
}

func (t integerType) Valid(l Literal) bool {
	_, ok := l.value.(int64)
	return ok
}

func (t integerType) Equal(a, b Literal) (eq bool, ok bool) {
	return numericEqual(a, b)
}

func (t integerType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	return numericCmp(a, b)
}
