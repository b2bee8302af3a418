package literal

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// doubleType implements xsd:double and, with single set, xsd:float
// (which canonicalizes through binary32 precision). The value
// representation is a float64 whose special states are the IEEE-754
// infinities and NaN.
type doubleType struct {
	iri    IRI
	single bool
}

// The XSD lexical space for the float kinds: an optional sign, a decimal
// mantissa ("1", "1.", "1.5", ".5") and an optional exponent, or one of the
// special tokens.
var doubleLexical = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func (t doubleType) IRI() IRI { return t.iri }

func (t doubleType) Convert(input any) (any, bool) {
	switch v := input.(type) {
	case float64:
		return t.clamp(v), true
	case float32:
		return float64(v), true
	case int:
		return t.clamp(float64(v)), true
	case int64:
		return t.clamp(float64(v)), true
	case int32:
		return t.clamp(float64(v)), true
	case *apd.Decimal:
		return decimalToFloat(v), true
	case string:
		return t.parse(v)
	}
	if s, ok := fallbackLexical(input); ok {
		return t.parse(s)
	}
	return nil, false
}

func (t doubleType) clamp(f float64) float64 {
	if t.single {
		return float64(float32(f))
	}
	return f
}

func (t doubleType) parse(s string) (any, bool) {
	if doubleLexical.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return t.clamp(f), true
		}
		// Forms like "1.E3" trip some parsers; pad the empty fraction
		// and retry.
		if i := strings.IndexAny(s, "eE"); i > 0 && s[i-1] == '.' {
			if f, err := strconv.ParseFloat(s[:i]+"0"+s[i:], 64); err == nil {
				return t.clamp(f), true
			}
		}
		return nil, false
	}
	switch strings.ToUpper(s) {
	case "INF", "+INF":
		return math.Inf(1), true
	case "-INF":
		return math.Inf(-1), true
	case "NAN":
		return math.NaN(), true
	}
	return nil, false
}

func (t doubleType) CanonicalLexical(value any) string {
	f := value.(float64)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	bits := 64
	if t.single {
		bits = 32
	}
	return canonicalScientific(strconv.FormatFloat(f, 'E', -1, bits))
}

// canonicalScientific rewrites strconv's "d.dddE±XX" output into the XSD
// canonical form: a single integer digit, a minimal fraction of at least
// one digit, and an exponent without a leading plus or zeros. The shortest
// round-trip rendering already has no trailing mantissa zeros to strip.
func canonicalScientific(s string) string {
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	negExp := strings.HasPrefix(exp, "-")
	digits := strings.TrimLeft(strings.TrimLeft(exp, "+-"), "0")
	if digits == "" {
		digits = "0"
	}
	if negExp && digits != "0" {
		digits = "-" + digits
	}
	return mantissa + "E" + digits
}

func (t doubleType) Cast(l Literal) (Literal, bool) {
	if l.value == nil {
		return Literal{}, false
	}
	switch l.datatype {
	case XSDBoolean:
		if l.value.(bool) {
			return NewTyped(1.0, t.iri), true
		}
		return NewTyped(0.0, t.iri), true
	case XSDDouble, XSDFloat:
		return NewTyped(l.value, t.iri), true
	case XSDString:
		cast := NewTyped(l.value.(string), t.iri)
		if !cast.Valid() {
			return Literal{}, false
		}
		return cast.Canonical(), true
	case XSDDecimal:
		return NewTyped(decimalToFloat(l.value.(*apd.Decimal)), t.iri), true
	case XSDInteger:
		return NewTyped(float64(l.value.(int64)), t.iri), true
	}
	return Literal{}, false
}

func (t doubleType) Valid(l Literal) bool {
	_, ok := l.value.(float64)
	return ok
}

// Equality and ordering of the float kinds carry no logic of their own;
// both delegate to the numeric engine.
func (t doubleType) Equal(a, b Literal) (eq bool, ok bool) {
	return numericEqual(a, b)
}

func (t doubleType) Cmp(a, b Literal) (cmp int, ok bool, err error) {
	return numericCmp(a, b)
}
