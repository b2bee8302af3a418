package literal

import (
	"time"
)

// TimeValue is the converted representation of the temporal datatypes:
// the instant plus whether the lexical form carried an explicit timezone
// offset. XSD keeps zoned and zoneless values only partially ordered, so
// the flag is part of the value.
type TimeValue struct {
	Time      time.Time
	HasOffset bool
}

// temporalType implements xsd:date, xsd:time and xsd:dateTime, selected by
// IRI. The layout is the Go reference layout of the offset-less canonical
// form; fractional seconds in the layout trim their trailing zeros.
type temporalType struct {
	iri    IRI
	layout string
}

func (t temporalType) IRI() IRI { return t.iri }

func (t temporalType) Convert(input any) (any, bool) {
	switch v := input.(type) {
	case TimeValue:
		return v, true
	case time.Time:
		return TimeValue{Time: v, HasOffset: true}, true
	case string:
		return t.parse(v)
	}
	if s, ok := fallbackLexical(input); ok {
		return t.parse(s)
	}
	return nil, false
}

func (t temporalType) parse(s string) (any, bool) {
	if parsed, err := time.Parse(t.layout+"Z07:00", s); err == nil {
		return TimeValue{Time: parsed, HasOffset: true}, true
	}
	if parsed, err := time.Parse(t.layout, s); err == nil {
		return TimeValue{Time: parsed, HasOffset: false}, true
	}
	return nil, false
}

func (t temporalType) CanonicalLexical(value any) string {
	v := value.(TimeValue)
	if v.HasOffset {
		return v.Time.Format(t.layout + "Z07:00")
	}
	return v.Time.Format(t.layout)
}

func (t temporalType) Cast(l Literal) (Literal, bool) {
	if l.value == nil {
		return Literal{}, false
	}
	if l.datatype == t.iri {
		return NewTyped(l.value, t.iri), true
	}
	switch l.datatype {
	case XSDString:
		cast := NewTyped(l.value.(string), t.iri)
		if !cast.Valid() {
			return Literal{}, false
		}
		return cast.Canonical(), true
	case XSDDateTime:
		v := l.value.(TimeValue)
		switch t.iri {
		case XSDDate:
			y, m, d := v.Time.Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, v.Time.Location())
			return NewTyped(TimeValue{Time: day, HasOffset: v.HasOffset}, XSDDate), true
		case XSDTime:
			clock := time.Date(0, time.January, 1,
				v.Time.Hour(), v.Time.Minute(), v.Time.Second(), v.Time.Nanosecond(),
				v.Time.Location())
			return NewTyped(TimeValue{Time: clock, HasOffset: v.HasOffset}, XSDTime), true
		}
	case XSDDate:
		if t.iri == XSDDateTime {
			return NewTyped(l.value, XSDDateTime), true
		}
	}
	return Literal{}, false
}

func (t temporalType) Valid(l Literal) bool {
	_, ok := l.value.(TimeValue)
	return ok
}

func (t temporalType) Equal(a, b Literal) (eq bool, ok bool) {
	cmp, ok, err := t.Cmp(a, b)
	if err != nil || !ok {
		return false, false
	}
	return cmp == 0, true
}

func (t temporalType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	if b.datatype != t.iri {
		return 0, false, errNotComparable
	}
	av, okA := a.value.(TimeValue)
	bv, okB := b.value.(TimeValue)
	if !okA || !okB {
		return 0, false, errNotComparable
	}
	// A zoned and a zoneless value have no total order; the outcome is
	// defined but indeterminate.
	if av.HasOffset != bv.HasOffset {
		return 0, false, nil
	}
	switch {
	case av.Time.Before(bv.Time):
		return -1, true, nil
	case av.Time.After(bv.Time):
		return 1, true, nil
	default:
		return 0, true, nil
	}
}
