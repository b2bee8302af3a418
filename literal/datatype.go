// Package literal implements the typed scalar value layer of an RDF graph
// store: literals with a datatype IRI, an optional language tag, lazy
// canonicalization, datatype-aware equality and ordering, and a numeric
// coercion/arithmetic engine covering xsd:integer, xsd:decimal and the
// IEEE-754 kinds.
//
// Literals are immutable values. Construction never fails in the soft tier:
// a lexical form that does not convert yields a literal with an absent value
// that keeps the source text for diagnostics. The strict tier (NewValid)
// turns that into an *InvalidLiteralError instead.
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// IRI identifies a datatype. The graph layer carries a full term model;
// here the identifier is only the key used for registry dispatch.
type IRI string

const (
	xsdNamespace = "http://www.w3.org/2001/XMLSchema#"
	rdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	XSDString   IRI = xsdNamespace + "string"
	XSDBoolean  IRI = xsdNamespace + "boolean"
	XSDInteger  IRI = xsdNamespace + "integer"
	XSDDecimal  IRI = xsdNamespace + "decimal"
	XSDDouble   IRI = xsdNamespace + "double"
	XSDFloat    IRI = xsdNamespace + "float"
	XSDDate     IRI = xsdNamespace + "date"
	XSDTime     IRI = xsdNamespace + "time"
	XSDDateTime IRI = xsdNamespace + "dateTime"

	RDFLangString IRI = rdfNamespace + "langString"
)

// Datatype implements the behavior of one registered datatype.
// Every literal-level operation resolves the implementation by datatype IRI
// and delegates entirely to it.
type Datatype interface {
	// IRI returns the identifier the datatype registers under.
	IRI() IRI
	// Convert turns a native Go value or a lexical form into the datatype's
	// value representation. ok=false means the input is not convertible.
	Convert(input any) (value any, ok bool)
	// CanonicalLexical renders the canonical lexical form of a converted value.
	CanonicalLexical(value any) string
	// Cast converts a literal of another datatype into this one.
	// ok=false means the cast is not defined for the literal's datatype
	// or the literal itself is invalid.
	Cast(l Literal) (Literal, bool)
	// Valid reports whether the literal's value is in the datatype's
	// value space.
	Valid(l Literal) bool
	// Equal implements datatype-aware equality. ok=false means the two
	// literals are not comparable.
	Equal(a, b Literal) (eq bool, ok bool)
	// Cmp orders two literals. A non-nil error means the operands are not
	// comparable at all; ok=false with a nil error means the order is
	// defined but indeterminate (e.g. NaN is involved).
	Cmp(a, b Literal) (cmp int, ok bool, err error)
}

var builtinTypes = []Datatype{
	stringType{},
	langStringType{},
	booleanType{},
	integerType{},
	decimalType{},
	doubleType{iri: XSDDouble},
	doubleType{iri: XSDFloat, single: true},
	temporalType{iri: XSDDate, layout: "2006-01-02"},
	temporalType{iri: XSDTime, layout: "15:04:05.999999999"},
	temporalType{iri: XSDDateTime, layout: "2006-01-02T15:04:05.999999999"},
}

var registry = func() map[IRI]Datatype {
	m := make(map[IRI]Datatype, len(builtinTypes))
	for _, dt := range builtinTypes {
		m[dt.IRI()] = dt
	}
	return m
}()

// Register adds a custom datatype implementation to the registry.
//
// The registry is process-wide, write-once, read-many state: all Register
// calls must complete before the first literal operation and must not run
// concurrently with lookups. Registering over a built-in IRI replaces it.
func Register(dt Datatype) {
	registry[dt.IRI()] = dt
}

func lookup(iri IRI) (Datatype, bool) {
	dt, ok := registry[iri]
	return dt, ok
}

// resolve returns the registered implementation, or the opaque fallback for
// unknown IRIs so that call sites never branch on a missing entry.
func resolve(iri IRI) Datatype {
	if dt, ok := lookup(iri); ok {
		return dt
	}
	return opaqueType{iri: iri}
}

// opaqueType handles literals whose datatype has no registered logic:
// always valid, canonical form is the stored text verbatim, equality needs
// an identical datatype IRI, ordering and casting are unsupported.
type opaqueType struct {
	iri IRI
}

func (t opaqueType) IRI() IRI { return t.iri }

func (t opaqueType) Convert(input any) (any, bool) {
	s, ok := fallbackLexical(input)
	return s, ok
}

func (t opaqueType) CanonicalLexical(value any) string {
	s, _ := value.(string)
	return s
}

func (t opaqueType) Cast(l Literal) (Literal, bool) {
	return Literal{}, false
}

func (t opaqueType) Valid(l Literal) bool {
	return true
}

func (t opaqueType) Equal(a, b Literal) (eq bool, ok bool) {
	if a.datatype != b.datatype {
		return false, false
	}
	return a.Lexical() == b.Lexical(), true
}

func (t opaqueType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	return 0, false, fmt.Errorf("datatype <%s> defines no order", t.iri)
}

// fallbackLexical derives a lexical form from inputs the type-specific
// conversions do not special-case. Conversions compose with it explicitly
// instead of relying on implicit dispatch.
func fallbackLexical(input any) (string, bool) {
	switch v := input.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case *apd.Decimal:
		return v.Text('f'), true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

// lexicalInput reports the source text of inputs that arrive as text and
// therefore have a lexical form worth retaining. Native values, including
// Stringer value representations whose renderings are not lexical forms,
// report false.
func lexicalInput(input any) (string, bool) {
	switch v := input.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

var errNotComparable = errors.New("literals are not comparable")
