package literal

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
)

func TestNewInfersDatatype(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		datatype IRI
		lexical  string
	}{
		{"string", "chat", XSDString, "chat"},
		{"bool", true, XSDBoolean, "true"},
		{"int", 42, XSDInteger, "42"},
		{"int64", int64(-7), XSDInteger, "-7"},
		{"uint16", uint16(9), XSDInteger, "9"},
		{"float64", 3.5, XSDDouble, "3.5E0"},
		{"float32", float32(2), XSDDouble, "2.0E0"},
		{"decimal", apd.New(15, -1), XSDDecimal, "1.5"},
		{
			"time",
			time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
			XSDDateTime,
			"2024-03-01T10:20:30Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.value)
			if err != nil {
				t.Fatalf("New(%v): unexpected error %v", tt.value, err)
			}
			if l.Datatype() != tt.datatype {
				t.Errorf("datatype = %s, want %s", l.Datatype(), tt.datatype)
			}
			if got := l.Lexical(); got != tt.lexical {
				t.Errorf("lexical = %q, want %q", got, tt.lexical)
			}
			if !l.Valid() {
				t.Errorf("literal %s should be valid", l)
			}
		})
	}
}

func TestNewRejectsUnmappedShapes(t *testing.T) {
	_, err := New(struct{ X int }{X: 1})
	var unsupported *UnsupportedNativeTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedNativeTypeError, got %v", err)
	}
}

func TestNewTypedKeepsUnconvertibleInput(t *testing.T) {
	l := NewTyped("forty-two", XSDInteger)
	if l.Valid() {
		t.Error("literal should be invalid")
	}
	if l.Value() != nil {
		t.Errorf("value = %v, want nil", l.Value())
	}
	if got := l.Lexical(); got != "forty-two" {
		t.Errorf("lexical = %q, want the preserved input", got)
	}
	// invalid literals are not canonicalizable
	if c := l.Canonical(); !c.SameTerm(l) || c.IsCanonical() {
		t.Error("canonicalizing an invalid literal must return it unchanged")
	}
}

func TestNewTypedRetainsTextualSources(t *testing.T) {
	l := NewTyped([]byte("042"), XSDInteger)
	if !l.Valid() {
		t.Fatalf("literal %s should be valid", l)
	}
	if got := l.Lexical(); got != "042" {
		t.Errorf("lexical = %q, want the source text %q", got, "042")
	}
	if got := l.Canonical().Lexical(); got != "42" {
		t.Errorf("canonical = %q, want %q", got, "42")
	}
}

func TestNewValid(t *testing.T) {
	if _, err := NewValid("12", XSDInteger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := NewValid("forty-two", XSDInteger)
	var invalid *InvalidLiteralError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidLiteralError, got %v", err)
	}
	if got := invalid.Literal.Lexical(); got != "forty-two" {
		t.Errorf("carried literal lexical = %q, want %q", got, "forty-two")
	}
}

func TestNewLang(t *testing.T) {
	l, err := NewLang("chat", "FR", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Language() != "fr" {
		t.Errorf("language = %q, want lowercased %q", l.Language(), "fr")
	}
	if !l.Valid() || !l.HasLanguage() || !l.IsPlain() || l.IsTyped() {
		t.Errorf("unexpected classification for %s", l)
	}

	_, err = NewLang("chat", "fr", XSDString)
	var incompatible *IncompatibleLanguageTagError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected *IncompatibleLanguageTagError, got %v", err)
	}

	// a malformed tag is a soft failure, not an error
	bad, err := NewLang("chat", "not a tag", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bad.Valid() {
		t.Error("literal with malformed tag should be invalid")
	}

	// langString without a tag is invalid
	if NewTyped("chat", RDFLangString).Valid() {
		t.Error("rdf:langString without a tag should be invalid")
	}
}

func TestCanonicalForms(t *testing.T) {
	tests := []struct {
		lexical   string
		datatype  IRI
		canonical string
	}{
		{"042", XSDInteger, "42"},
		{"+5", XSDInteger, "5"},
		{"-0", XSDInteger, "0"},
		{"2.50", XSDDecimal, "2.5"},
		{".5", XSDDecimal, "0.5"},
		{"1.", XSDDecimal, "1.0"},
		{"-0.0", XSDDecimal, "0.0"},
		{"00100", XSDDecimal, "100.0"},
		{"3.1", XSDDouble, "3.1E0"},
		{"-3.1", XSDDouble, "-3.1E0"},
		{"1000", XSDDouble, "1.0E3"},
		{"0.00012", XSDDouble, "1.2E-4"},
		{"1.0e15", XSDDouble, "1.0E15"},
		{"-0.0", XSDDouble, "-0.0E0"},
		{"inf", XSDDouble, "INF"},
		{"+INF", XSDDouble, "INF"},
		{"-inf", XSDDouble, "-INF"},
		{"nan", XSDDouble, "NaN"},
		{"1", XSDBoolean, "true"},
		{"0", XSDBoolean, "false"},
		{"true", XSDBoolean, "true"},
		{"2024-03-01T10:20:30.500+01:00", XSDDateTime, "2024-03-01T10:20:30.5+01:00"},
		{"2024-03-01T10:20:30+00:00", XSDDateTime, "2024-03-01T10:20:30Z"},
		{"2024-03-01", XSDDate, "2024-03-01"},
		{"10:20:30", XSDTime, "10:20:30"},
	}
	for _, tt := range tests {
		t.Run(string(tt.datatype)+"/"+tt.lexical, func(t *testing.T) {
			l := NewTyped(tt.lexical, tt.datatype)
			if !l.Valid() {
				t.Fatalf("literal %s should be valid", l)
			}
			if got := l.Lexical(); got != tt.lexical {
				t.Errorf("pre-canonical lexical = %q, want the input %q", got, tt.lexical)
			}
			c := l.Canonical()
			if got := c.Lexical(); got != tt.canonical {
				t.Errorf("canonical lexical = %q, want %q", got, tt.canonical)
			}
			if !c.IsCanonical() {
				t.Error("canonical literal should report IsCanonical")
			}
			// idempotence
			if again := c.Canonical(); again.Lexical() != c.Lexical() || !again.SameTerm(c) {
				t.Error("Canonical is not idempotent")
			}
		})
	}
}

func TestClassificationPredicates(t *testing.T) {
	simple := NewTyped("chat", XSDString)
	tagged, _ := NewLang("chat", "fr", "")
	typed := NewTyped("42", XSDInteger)

	got := []bool{
		simple.IsSimple(), simple.IsPlain(), simple.HasDatatype(),
		tagged.IsSimple(), tagged.IsPlain(), tagged.HasDatatype(),
		typed.IsSimple(), typed.IsPlain(), typed.HasDatatype(),
	}
	want := []bool{
		true, true, false,
		false, true, false,
		false, false, true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("predicate mismatch (-want +got):\n%s", diff)
	}
}

func TestEqualValue(t *testing.T) {
	frChat, _ := NewLang("chat", "fr", "")
	frChatUpper, _ := NewLang("chat", "FR", "")
	enChat, _ := NewLang("chat", "en", "")

	tests := []struct {
		name   string
		a, b   any
		eq, ok bool
	}{
		{"same integers", NewTyped("1", XSDInteger), NewTyped("01", XSDInteger), true, true},
		{"integer vs decimal", NewTyped("1", XSDInteger), NewTyped("1.0", XSDDecimal), true, true},
		{"scale-distinct decimals", NewTyped("1.0", XSDDecimal), NewTyped("1.00", XSDDecimal), true, true},
		{"integer vs double", 2, NewTyped("2.0E0", XSDDouble), true, true},
		{"unequal numerics", NewTyped("1", XSDInteger), 1.5, false, true},
		{"NaN is unequal to itself", math.NaN(), math.NaN(), false, true},
		{"strings", "a", "a", true, true},
		{"string vs integer", "1", 1, false, false},
		{"langString tags case-insensitive", frChat, frChatUpper, true, true},
		{"langString different tags", frChat, enChat, false, true},
		{"boolean", true, NewTyped("1", XSDBoolean), true, true},
		{"invalid operand", NewTyped("x", XSDInteger), 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq, ok := EqualValue(tt.a, tt.b)
			if eq != tt.eq || ok != tt.ok {
				t.Errorf("EqualValue = (%v, %v), want (%v, %v)", eq, ok, tt.eq, tt.ok)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		cmp  int
		ok   bool
		err  bool
	}{
		{"integers", 1, 2, -1, true, false},
		{"mixed numeric", NewTyped("2.5", XSDDecimal), 2, 1, true, false},
		{"strings", "a", "b", -1, true, false},
		{"booleans", false, true, -1, true, false},
		{"dates", NewTyped("2024-01-02", XSDDate), NewTyped("2024-01-03", XSDDate), -1, true, false},
		{"NaN is indeterminate", math.NaN(), 1.0, 0, false, false},
		{"string vs number", "a", 1, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok, err := Compare(tt.a, tt.b)
			if cmp != tt.cmp || ok != tt.ok || (err != nil) != tt.err {
				t.Errorf("Compare = (%v, %v, %v), want (%v, %v, err=%v)",
					cmp, ok, err, tt.cmp, tt.ok, tt.err)
			}
		})
	}
}

func TestCompareTransitivity(t *testing.T) {
	a := NewTyped("1.25", XSDDecimal)
	b := NewTyped("2.5", XSDDecimal)
	c := NewTyped("10", XSDDecimal)
	pairs := [][2]Literal{{a, b}, {b, c}, {a, c}}
	for _, p := range pairs {
		if lt, ok := p[0].Less(p[1]); !ok || !lt {
			t.Errorf("%s should order before %s", p[0], p[1])
		}
	}
}

func TestLessGreaterTriState(t *testing.T) {
	nan := NewTyped(math.NaN(), XSDDouble)
	one := NewTyped(1.0, XSDDouble)

	if _, ok := nan.Less(one); ok {
		t.Error("NaN ordering must be unknown, not false")
	}
	if _, ok := one.Greater(nan); ok {
		t.Error("NaN ordering must be unknown, not false")
	}
	if lt, ok := one.Less(NewTyped(2.0, XSDDouble)); !ok || !lt {
		t.Error("1.0 < 2.0 should hold")
	}
}

func TestTemporalOffsetMismatchIsIndeterminate(t *testing.T) {
	zoned := NewTyped("2024-03-01T10:00:00Z", XSDDateTime)
	zoneless := NewTyped("2024-03-01T10:00:00", XSDDateTime)

	cmp, ok, err := zoned.Cmp(zoneless)
	if err != nil {
		t.Fatalf("expected indeterminate outcome, got error %v", err)
	}
	if ok || cmp != 0 {
		t.Errorf("Cmp = (%v, %v), want indeterminate (0, false)", cmp, ok)
	}

	// equal instants in different offsets compare equal
	paris := NewTyped("2024-03-01T11:00:00+01:00", XSDDateTime)
	if eq, ok := zoned.Equal(paris); !ok || !eq {
		t.Errorf("same instant in different offsets should be equal, got (%v, %v)", eq, ok)
	}
}

func TestSameTerm(t *testing.T) {
	tests := []struct {
		name string
		a, b Literal
		want bool
	}{
		{
			"raw lexical is irrelevant",
			NewTyped("042", XSDInteger),
			NewTyped("42", XSDInteger),
			true,
		},
		{
			"canonicalization does not change the term",
			NewTyped("2.50", XSDDecimal),
			NewTyped("2.50", XSDDecimal).Canonical(),
			true,
		},
		{
			"decimal scale is part of the term",
			NewTyped("1.0", XSDDecimal),
			NewTyped("1.00", XSDDecimal),
			false,
		},
		{
			"signed zeros are distinct terms",
			NewTyped("-0.0", XSDDouble),
			NewTyped("0.0", XSDDouble),
			false,
		},
		{
			"NaN is one term",
			NewTyped("NaN", XSDDouble),
			NewTyped("NaN", XSDDouble),
			true,
		},
		{
			"datatype matters",
			NewTyped("1", XSDInteger),
			NewTyped("1", XSDDecimal),
			false,
		},
		{
			"invalid literals compare by preserved text",
			NewTyped("x", XSDInteger),
			NewTyped("x", XSDInteger),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameTerm(tt.b); got != tt.want {
				t.Errorf("SameTerm(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOpaqueFallback(t *testing.T) {
	const custom IRI = "http://example.com/ns#fraction"

	l := NewTyped("1/3", custom)
	if !l.Valid() {
		t.Error("opaque literals are always valid")
	}
	if !l.IsCanonical() || l.Lexical() != "1/3" {
		t.Errorf("opaque canonical form must be the text verbatim, got %q", l.Lexical())
	}

	same := NewTyped("1/3", custom)
	if eq, ok := l.Equal(same); !ok || !eq {
		t.Errorf("identical opaque literals should be equal, got (%v, %v)", eq, ok)
	}
	other := NewTyped("2/3", custom)
	if eq, ok := l.Equal(other); !ok || eq {
		t.Errorf("distinct opaque values should be unequal, got (%v, %v)", eq, ok)
	}
	foreign := NewTyped("1/3", IRI("http://example.com/ns#ratio"))
	if _, ok := l.Equal(foreign); ok {
		t.Error("opaque literals of unrelated datatypes are not comparable")
	}

	if _, _, err := l.Cmp(same); err == nil {
		t.Error("opaque literals define no order")
	}
	if _, ok := Cast(NewTyped("1", XSDInteger), custom); ok {
		t.Error("casting to an unregistered datatype is unsupported")
	}
}

// hexType exercises the open registration point: a custom datatype with its
// own lexical space.
type hexType struct{}

func (hexType) IRI() IRI { return "http://example.com/ns#hex" }

func (hexType) Convert(input any) (any, bool) {
	s, ok := input.(string)
	if !ok || !strings.HasPrefix(s, "0x") {
		return nil, false
	}
	n, err := strconv.ParseInt(s[2:], 16, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

func (hexType) CanonicalLexical(value any) string {
	return "0x" + strconv.FormatInt(value.(int64), 16)
}

func (hexType) Cast(l Literal) (Literal, bool) { return Literal{}, false }

func (hexType) Valid(l Literal) bool {
	_, ok := l.value.(int64)
	return ok
}

func (hexType) Equal(a, b Literal) (eq bool, ok bool) {
	if b.datatype != (hexType{}).IRI() {
		return false, false
	}
	return a.value == b.value, true
}

func (hexType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	if b.datatype != (hexType{}).IRI() {
		return 0, false, errNotComparable
	}
	av, bv := a.value.(int64), b.value.(int64)
	switch {
	case av < bv:
		return -1, true, nil
	case av > bv:
		return 1, true, nil
	default:
		return 0, true, nil
	}
}

func TestRegister(t *testing.T) {
	Register(hexType{})

	l := NewTyped("0x2A", hexType{}.IRI())
	if !l.Valid() {
		t.Fatalf("literal %s should be valid", l)
	}
	if got := l.Canonical().Lexical(); got != "0x2a" {
		t.Errorf("canonical = %q, want %q", got, "0x2a")
	}
	if eq, ok := l.Equal(NewTyped("0x2a", hexType{}.IRI())); !ok || !eq {
		t.Errorf("registered equality should apply, got (%v, %v)", eq, ok)
	}
}

func TestCast(t *testing.T) {
	tests := []struct {
		name    string
		literal Literal
		target  IRI
		ok      bool
		lexical string
	}{
		{"boolean to double", NewTyped("true", XSDBoolean), XSDDouble, true, "1.0E0"},
		{"boolean to integer", NewTyped("false", XSDBoolean), XSDInteger, true, "0"},
		{"string to double", NewTyped("3.5", XSDString), XSDDouble, true, "3.5E0"},
		{"string to double invalid", NewTyped("abc", XSDString), XSDDouble, false, ""},
		{"decimal to integer truncates", NewTyped("3.9", XSDDecimal), XSDInteger, true, "3"},
		{"negative decimal to integer", NewTyped("-3.9", XSDDecimal), XSDInteger, true, "-3"},
		{"double to decimal", NewTyped("2.5E0", XSDDouble), XSDDecimal, true, "2.5"},
		{"double at two to the 63rd", NewTyped(9.223372036854776e18, XSDDouble), XSDInteger, false, ""},
		{"double at the int64 minimum", NewTyped(-9.223372036854776e18, XSDDouble), XSDInteger, true, "-9223372036854775808"},
		{"infinite double to decimal", NewTyped("INF", XSDDouble), XSDDecimal, false, ""},
		{"integer to string", NewTyped("042", XSDInteger), XSDString, true, "42"},
		{"integer to boolean", NewTyped("7", XSDInteger), XSDBoolean, true, "true"},
		{"NaN to boolean", NewTyped("NaN", XSDDouble), XSDBoolean, true, "false"},
		{"dateTime to date", NewTyped("2024-03-01T10:20:30Z", XSDDateTime), XSDDate, true, "2024-03-01Z"},
		{"integer to date", NewTyped("1", XSDInteger), XSDDate, false, ""},
		{"invalid literal", NewTyped("x", XSDInteger), XSDDouble, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cast, ok := Cast(tt.literal, tt.target)
			if ok != tt.ok {
				t.Fatalf("Cast ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if cast.Datatype() != tt.target {
				t.Errorf("datatype = %s, want %s", cast.Datatype(), tt.target)
			}
			if got := cast.Canonical().Lexical(); got != tt.lexical {
				t.Errorf("lexical = %q, want %q", got, tt.lexical)
			}
		})
	}
}

func TestStringRendering(t *testing.T) {
	tagged, _ := NewLang("chat", "fr", "")
	got := []string{
		NewTyped("hi", XSDString).String(),
		tagged.String(),
		NewTyped("42", XSDInteger).String(),
	}
	want := []string{
		`"hi"`,
		`"chat"@fr`,
		`"42"^^<http://www.w3.org/2001/XMLSchema#integer>`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("String mismatch (-want +got):\n%s", diff)
	}
}
