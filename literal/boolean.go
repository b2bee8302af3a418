package literal

import (
	"math"

	"github.com/cockroachdb/apd/v3"
)

// booleanType implements xsd:boolean. The lexical space admits true, false,
// 1 and 0; the canonical forms are true and false.
type booleanType struct{}

func (t booleanType) IRI() IRI { return XSDBoolean }

func (t booleanType) Convert(input any) (any, bool) {
	switch v := input.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return nil, false
	}
	if s, ok := fallbackLexical(input); ok {
		return t.Convert(s)
	}
	return nil, false
}

func (t booleanType) CanonicalLexical(value any) string {
	if value.(bool) {
		return "true"
	}
	return "false"
}

func (t booleanType) Cast(l Literal) (Literal, bool) {
	if l.value == nil {
		return Literal{}, false
	}
	switch l.datatype {
	case XSDBoolean:
		return NewTyped(l.value, XSDBoolean), true
	case XSDString:
		cast := NewTyped(l.value.(string), XSDBoolean)
		if !cast.Valid() {
			return Literal{}, false
		}
		return cast.Canonical(), true
	case XSDInteger:
		return NewTyped(l.value.(int64) != 0, XSDBoolean), true
	case XSDDecimal:
		return NewTyped(!l.value.(*apd.Decimal).IsZero(), XSDBoolean), true
	case XSDDouble, XSDFloat:
		f := l.value.(float64)
		// NaN casts to false per the XPath casting rules
		return NewTyped(f != 0 && !math.IsNaN(f), XSDBoolean), true
	}
	return Literal{}, false
}

func (t booleanType) Valid(l Literal) bool {
	_, ok := l.value.(bool)
	return ok
}

func (t booleanType) Equal(a, b Literal) (eq bool, ok bool) {
	if b.datatype != XSDBoolean {
		return false, false
	}
	av, okA := a.value.(bool)
	bv, okB := b.value.(bool)
	if !okA || !okB {
		return false, false
	}
	return av == bv, true
}

func (t booleanType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	eq, comparable := t.Equal(a, b)
	if !comparable {
		return 0, false, errNotComparable
	}
	if eq {
		return 0, true, nil
	}
	// false orders before true
	if !a.value.(bool) {
		return -1, true, nil
	}
	return 1, true, nil
}
