package literal

import "strings"

// stringType implements xsd:string. Every text value is valid and the
// canonical form is the text itself.
type stringType struct{}

func (t stringType) IRI() IRI { return XSDString }

func (t stringType) Convert(input any) (any, bool) {
	return fallbackLexical(input)
}

func (t stringType) CanonicalLexical(value any) string {
	return value.(string)
}

// Cast renders any valid literal's canonical lexical form as a string.
func (t stringType) Cast(l Literal) (Literal, bool) {
	if l.value == nil {
		return Literal{}, false
	}
	return NewTyped(l.Canonical().Lexical(), XSDString), true
}

func (t stringType) Valid(l Literal) bool {
	_, ok := l.value.(string)
	return ok
}

func (t stringType) Equal(a, b Literal) (eq bool, ok bool) {
	if b.datatype != XSDString {
		return false, false
	}
	av, okA := a.value.(string)
	bv, okB := b.value.(string)
	if !okA || !okB {
		return false, false
	}
	return av == bv, true
}

func (t stringType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	if b.datatype != XSDString {
		return 0, false, errNotComparable
	}
	av, okA := a.value.(string)
	bv, okB := b.value.(string)
	if !okA || !okB {
		return 0, false, errNotComparable
	}
	return strings.Compare(av, bv), true, nil
}

// langStringType implements rdf:langString: a text value plus a mandatory
// BCP 47 language tag, stored lowercased. Equality requires matching tags;
// ordering is defined within one tag only.
type langStringType struct{}

func (t langStringType) IRI() IRI { return RDFLangString }

func (t langStringType) Convert(input any) (any, bool) {
	return fallbackLexical(input)
}

func (t langStringType) CanonicalLexical(value any) string {
	return value.(string)
}

func (t langStringType) Cast(l Literal) (Literal, bool) {
	// There is no cast that could supply a language tag.
	return Literal{}, false
}

func (t langStringType) Valid(l Literal) bool {
	if _, ok := l.value.(string); !ok {
		return false
	}
	return l.language != ""
}

func (t langStringType) Equal(a, b Literal) (eq bool, ok bool) {
	if b.datatype != RDFLangString {
		return false, false
	}
	av, okA := a.value.(string)
	bv, okB := b.value.(string)
	if !okA || !okB {
		return false, false
	}
	return av == bv && strings.EqualFold(a.language, b.language), true
}

func (t langStringType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	if b.datatype != RDFLangString || !strings.EqualFold(a.language, b.language) {
		return 0, false, errNotComparable
	}
	av, okA := a.value.(string)
	bv, okB := b.value.(string)
	if !okA || !okB {
		return 0, false, errNotComparable
	}
	return strings.Compare(av, bv), true, nil
}
