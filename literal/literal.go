package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/language"
)

// Literal is an immutable typed scalar value: a converted native value, the
// datatype IRI it belongs to, an optional language tag, and optionally the
// original lexical form when that form is not yet proven canonical.
//
// A literal whose lexical form did not convert keeps an absent value; it is
// invalid but still carries the source text for diagnostics.
type Literal struct {
	value    any
	raw      string
	hasRaw   bool
	datatype IRI
	language string
}

// UnsupportedNativeTypeError is returned by New when no datatype can be
// inferred from the shape of a native Go value.
type UnsupportedNativeTypeError struct {
	Value any
}

func (e *UnsupportedNativeTypeError) Error() string {
	return fmt.Sprintf("no datatype maps to native value of type %T", e.Value)
}

// InvalidLiteralError is returned by the strict constructors when the
// produced literal fails its datatype's validity check. It carries the
// offending literal for inspection.
type InvalidLiteralError struct {
	Literal Literal
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("invalid literal %s", e.Literal)
}

// IncompatibleLanguageTagError is returned when a language tag is combined
// with a datatype other than rdf:langString.
type IncompatibleLanguageTagError struct {
	Datatype IRI
}

func (e *IncompatibleLanguageTagError) Error() string {
	return fmt.Sprintf("language tags require rdf:langString, got <%s>", e.Datatype)
}

// New builds a literal by inferring the datatype from the native value's
// shape: string becomes xsd:string, bool xsd:boolean, the integer kinds
// xsd:integer, the float kinds xsd:double, apd decimals xsd:decimal and
// time.Time xsd:dateTime. Unmapped shapes yield an
// *UnsupportedNativeTypeError.
func New(value any) (Literal, error) {
	switch v := value.(type) {
	case Literal:
		return v, nil
	case string:
		return NewTyped(v, XSDString), nil
	case bool:
		return NewTyped(v, XSDBoolean), nil
	case int:
		return NewTyped(int64(v), XSDInteger), nil
	case int8:
		return NewTyped(int64(v), XSDInteger), nil
	case int16:
		return NewTyped(int64(v), XSDInteger), nil
	case int32:
		return NewTyped(int64(v), XSDInteger), nil
	case int64:
		return NewTyped(v, XSDInteger), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Literal{}, &UnsupportedNativeTypeError{Value: value}
		}
		return NewTyped(int64(v), XSDInteger), nil
	case uint8:
		return NewTyped(int64(v), XSDInteger), nil
	case uint16:
		return NewTyped(int64(v), XSDInteger), nil
	case uint32:
		return NewTyped(int64(v), XSDInteger), nil
	case uint64:
		if v > math.MaxInt64 {
			return Literal{}, &UnsupportedNativeTypeError{Value: value}
		}
		return NewTyped(int64(v), XSDInteger), nil
	case float32:
		return NewTyped(float64(v), XSDDouble), nil
	case float64:
		return NewTyped(v, XSDDouble), nil
	case *apd.Decimal:
		return NewTyped(v, XSDDecimal), nil
	case apd.Decimal:
		return NewTyped(&v, XSDDecimal), nil
	case time.Time:
		return NewTyped(v, XSDDateTime), nil
	}
	return Literal{}, &UnsupportedNativeTypeError{Value: value}
}

// NewTyped builds a literal of the given datatype from a native value or a
// lexical form. It never fails: input that does not convert produces an
// invalid literal preserving the source text. An empty datatype defaults to
// xsd:string. A Literal input is cast instead of converted.
func NewTyped(input any, datatype IRI) Literal {
	if datatype == "" {
		datatype = XSDString
	}
	if l, ok := input.(Literal); ok {
		if cast, ok := Cast(l, datatype); ok {
			return cast
		}
		return Literal{raw: l.Lexical(), hasRaw: true, datatype: datatype}
	}

	dt := resolve(datatype)
	if value, ok := dt.Convert(input); ok {
		l := Literal{value: value, datatype: datatype}
		if s, fromText := lexicalInput(input); fromText && s != dt.CanonicalLexical(value) {
			l.raw, l.hasRaw = s, true
		}
		return l
	}
	raw, _ := fallbackLexical(input)
	return Literal{raw: raw, hasRaw: true, datatype: datatype}
}

// NewLang builds a language-tagged string. The datatype must be empty or
// rdf:langString; anything else is an *IncompatibleLanguageTagError.
// A malformed tag yields an invalid literal, not an error.
func NewLang(lexical, lang string, datatype IRI) (Literal, error) {
	if datatype != "" && datatype != RDFLangString {
		return Literal{}, &IncompatibleLanguageTagError{Datatype: datatype}
	}
	tag := strings.ToLower(lang)
	if _, err := language.Parse(tag); err != nil || lang == "" {
		return Literal{raw: lexical, hasRaw: true, datatype: RDFLangString, language: tag}, nil
	}
	return Literal{value: lexical, datatype: RDFLangString, language: tag}, nil
}

// NewValid is the strict constructor: as New (empty datatype) or NewTyped,
// but the result must pass its datatype's validity check. It returns an
// *InvalidLiteralError carrying the offending literal otherwise.
func NewValid(value any, datatype IRI) (Literal, error) {
	var l Literal
	if datatype == "" {
		var err error
		l, err = New(value)
		if err != nil {
			return Literal{}, err
		}
	} else {
		l = NewTyped(value, datatype)
	}
	if !l.Valid() {
		return Literal{}, &InvalidLiteralError{Literal: l}
	}
	return l, nil
}

// Cast converts a literal into the target datatype per that datatype's
// casting rules. Unregistered target datatypes do not support casting.
func Cast(l Literal, datatype IRI) (Literal, bool) {
	dt, ok := lookup(datatype)
	if !ok {
		return Literal{}, false
	}
	return dt.Cast(l)
}

// Value returns the converted native value, or nil when the literal's
// lexical form did not convert.
func (l Literal) Value() any { return l.value }

// Datatype returns the literal's datatype IRI.
func (l Literal) Datatype() IRI { return l.datatype }

// Language returns the language tag, empty unless the literal is an
// rdf:langString.
func (l Literal) Language() string { return l.language }

// Lexical returns the original lexical form when one is retained, otherwise
// the canonical rendering of the value.
func (l Literal) Lexical() string {
	if l.hasRaw {
		return l.raw
	}
	if l.value == nil {
		return ""
	}
	return resolve(l.datatype).CanonicalLexical(l.value)
}

// Canonical returns the literal with its retained lexical form dropped, so
// that Lexical renders the canonical form. Already-canonical and invalid
// literals are returned unchanged.
func (l Literal) Canonical() Literal {
	if !l.hasRaw || l.value == nil {
		return l
	}
	out := l
	out.raw, out.hasRaw = "", false
	return out
}

// IsCanonical reports whether no non-canonical lexical form is retained.
func (l Literal) IsCanonical() bool { return !l.hasRaw }

// Valid reports whether the literal passes its datatype's validity check.
// Literals of unregistered datatypes are always valid: there is no logic
// to check them against.
func (l Literal) Valid() bool {
	if (l.language != "") != (l.datatype == RDFLangString) {
		return false
	}
	dt, ok := lookup(l.datatype)
	if !ok {
		return true
	}
	return dt.Valid(l)
}

// IsSimple reports whether the literal is a plain xsd:string without a
// language tag.
func (l Literal) IsSimple() bool {
	return l.datatype == XSDString && l.language == ""
}

// HasLanguage reports whether the literal carries a language tag.
func (l Literal) HasLanguage() bool { return l.language != "" }

// IsPlain reports whether the literal is a simple or language-tagged string.
func (l Literal) IsPlain() bool {
	return l.IsSimple() || l.datatype == RDFLangString
}

// HasDatatype reports whether the literal has a datatype beyond the two
// plain string types.
func (l Literal) HasDatatype() bool { return !l.IsPlain() }

// IsTyped is an alias for HasDatatype.
func (l Literal) IsTyped() bool { return l.HasDatatype() }

// SameTerm implements structural (graph) equality: identical value,
// datatype and language. The retained lexical form is irrelevant, so
// canonicalization never affects deduplication. Two invalid literals are
// the same term when their lexical forms match.
func (l Literal) SameTerm(other Literal) bool {
	if l.datatype != other.datatype || l.language != other.language {
		return false
	}
	switch a := l.value.(type) {
	case nil:
		return other.value == nil && l.raw == other.raw
	case float64:
		b, ok := other.value.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		return math.Float64bits(a) == math.Float64bits(b)
	case *apd.Decimal:
		// scale is part of a decimal value, so 1.0 and 1.00 are distinct
		// terms even though they are equal in value
		b, ok := other.value.(*apd.Decimal)
		return ok && a.CmpTotal(b) == 0
	case TimeValue:
		b, ok := other.value.(TimeValue)
		return ok && a.Time.Equal(b.Time) && a.HasOffset == b.HasOffset
	default:
		return l.value == other.value
	}
}

// Equal implements datatype-aware value equality. ok=false means the two
// literals are not comparable (unrelated datatypes or an invalid operand),
// which callers must not conflate with inequality.
func (l Literal) Equal(other Literal) (eq bool, ok bool) {
	if l.value == nil || other.value == nil {
		return false, false
	}
	return resolve(l.datatype).Equal(l, other)
}

// Cmp orders two literals. A non-nil error means they are not comparable;
// ok=false with a nil error means the order is defined but indeterminate
// (NaN on either side).
func (l Literal) Cmp(other Literal) (cmp int, ok bool, err error) {
	if l.value == nil || other.value == nil {
		return 0, false, errNotComparable
	}
	return resolve(l.datatype).Cmp(l, other)
}

// Less reports whether l orders before other. ok=false means the answer is
// unknown: not comparable or indeterminate, distinct from false.
func (l Literal) Less(other Literal) (lt bool, ok bool) {
	cmp, ok, err := l.Cmp(other)
	if err != nil || !ok {
		return false, false
	}
	return cmp < 0, true
}

// Greater reports whether l orders after other, with the same tri-state
// semantics as Less.
func (l Literal) Greater(other Literal) (gt bool, ok bool) {
	cmp, ok, err := l.Cmp(other)
	if err != nil || !ok {
		return false, false
	}
	return cmp > 0, true
}

// EqualValue coerces both inputs into literals (raw Go values go through
// New) and compares them. Inputs that coerce to nothing are not comparable.
func EqualValue(a, b any) (eq bool, ok bool) {
	la, okA := asLiteral(a)
	lb, okB := asLiteral(b)
	if !okA || !okB {
		return false, false
	}
	return la.Equal(lb)
}

// Compare coerces both inputs into literals and orders them.
func Compare(a, b any) (cmp int, ok bool, err error) {
	la, okA := asLiteral(a)
	lb, okB := asLiteral(b)
	if !okA || !okB {
		return 0, false, errNotComparable
	}
	return la.Cmp(lb)
}

func asLiteral(v any) (Literal, bool) {
	if l, ok := v.(Literal); ok {
		return l, true
	}
	l, err := New(v)
	return l, err == nil
}

// String renders the literal in N-Triples style, for debugging.
func (l Literal) String() string {
	lex := strconv.Quote(l.Lexical())
	switch {
	case l.language != "":
		return lex + "@" + l.language
	case l.IsSimple():
		return lex
	default:
		return lex + "^^<" + string(l.datatype) + ">"
	}
}
