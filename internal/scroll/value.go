package scroll

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	relativeValueReg = regexp.MustCompile(`^[+-]\d`)
	numberReg        = regexp.MustCompile(`^\d*\.?\d*$`)
)

type valueKind uint8

const (
	valueUnset valueKind = iota
	valueAbsolute
	valueRelative
	valueInvalid
)

// Value is one axis of a Position: an absolute scroll offset, a relative
// amount such as "+50" or "-20", or unset. The zero Value is unset.
type Value struct {
	kind valueKind
	num  float64
	raw  string
}

// Abs returns an absolute offset. NaN and infinities are invalid and
// resolve to no movement.
func Abs(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{kind: valueInvalid, raw: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return Value{kind: valueAbsolute, num: v}
}

// By returns a relative amount. delta is truncated toward zero.
func By(delta float64) Value {
	raw := strconv.FormatFloat(delta, 'f', -1, 64)
	if delta >= 0 {
		raw = "+" + raw
	}
	return ParseValue(raw)
}

// IsRelative reports whether s is a relative amount: a sign followed by a digit.
func IsRelative(s string) bool {
	return relativeValueReg.MatchString(s)
}

// ParseValue interprets s the way a form field would be read: "" is unset,
// "+50" and "-20.7" are relative (truncated toward zero, so -20.7 moves by
// -20), "200" is absolute and anything else is invalid. Invalid values
// resolve to no movement.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Value{}
	case IsRelative(s):
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) {
			// A malformed amount like "+5px" moves nothing.
			return Value{kind: valueRelative, raw: s}
		}
		return Value{kind: valueRelative, num: math.Trunc(n), raw: s}
	case numberReg.MatchString(s):
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{kind: valueInvalid, raw: s}
		}
		return Value{kind: valueAbsolute, num: n, raw: s}
	default:
		return Value{kind: valueInvalid, raw: s}
	}
}

// IsSet reports whether the value was supplied.
func (v Value) IsSet() bool {
	return v.kind != valueUnset
}

// IsRelative reports whether the value is a relative amount.
func (v Value) IsRelative() bool {
	return v.kind == valueRelative
}

// String returns the value as it would be written in a script.
func (v Value) String() string {
	switch v.kind {
	case valueUnset:
		return ""
	case valueAbsolute:
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return v.raw
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. Unsigned numbers are absolute;
// a leading sign makes the value relative even when YAML reads it as a
// number, so `y: +200` and `y: "+200"` mean the same thing.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*v = Value{kind: valueInvalid, raw: node.Value}
		return nil
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		if IsRelative(node.Value) {
			*v = ParseValue(node.Value)
			return nil
		}
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = Abs(n)
	case "!!null":
		*v = Value{}
	default:
		*v = ParseValue(node.Value)
	}
	return nil
}

// Position is a coordinate target. Unset axes do not move.
type Position struct {
	X Value `yaml:"x"`
	Y Value `yaml:"y"`
}

// Edge is one of the four scroll extremes.
type Edge uint8

const (
	EdgeTop Edge = iota + 1
	EdgeBottom
	EdgeLeft
	EdgeRight
)

var edgeNames = map[Edge]string{
	EdgeTop:    "top",
	EdgeBottom: "bottom",
	EdgeLeft:   "left",
	EdgeRight:  "right",
}

// String returns the edge name.
func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return "edge(" + strconv.Itoa(int(e)) + ")"
}

// ParseEdge parses "top", "bottom", "left" or "right".
func ParseEdge(s string) (Edge, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for edge, name := range edgeNames {
		if name == s {
			return edge, true
		}
	}
	return 0, false
}
