package inspect

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Symbol is an interned name. It renders as :name.
type Symbol string

var plainSymbol = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*[?!=]?$`)

// String returns the symbol literal, quoting names that are not identifiers.
func (s Symbol) String() string {
	if plainSymbol.MatchString(string(s)) {
		return ":" + string(s)
	}
	return ":" + strconv.Quote(string(s))
}

// Date is a calendar date with no clock or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date, normalizing out-of-range months and days the
// way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns d in ISO 8601 form.
func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

// Pair is one entry of an OrderedMap.
type Pair struct {
	Key   any
	Value any
}

// OrderedMap is a key-value collection that keeps insertion order. Decoded
// documents use it so keys render in source order.
type OrderedMap []Pair

// Get returns the value of the first pair whose key equals key.
func (m OrderedMap) Get(key any) (any, bool) {
	kt := reflect.TypeOf(key)
	if kt != nil && !kt.Comparable() {
		return nil, false
	}
	for _, p := range m {
		pt := reflect.TypeOf(p.Key)
		if pt == kt && (pt == nil || pt.Comparable()) && p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (m OrderedMap) Keys() []any {
	keys := make([]any, len(m))
	for i, p := range m {
		keys[i] = p.Key
	}
	return keys
}

// ParamKind classifies a callable parameter.
type ParamKind int

const (
	ParamRequired ParamKind = iota
	ParamOptional
	ParamRest
	ParamBlock
)

// Param describes one callable parameter. An empty Name renders as argN.
type Param struct {
	Kind ParamKind
	Name string
}

func (p Param) format(pos int) string {
	name := p.Name
	if name == "" {
		name = "arg" + strconv.Itoa(pos)
	}
	switch p.Kind {
	case ParamOptional:
		return name + " = ?"
	case ParamRest:
		return "*" + name
	case ParamBlock:
		return "&" + name
	default:
		return name
	}
}

// Method describes a callable. When Params is nil the parameter list is
// synthesized from Arity; a negative Arity means at least -Arity arguments.
type Method struct {
	Owner   string
	Name    string
	Params  []Param
	Arity   int
	Unbound bool
}

// Signature returns the parenthesized parameter list.
func (m Method) Signature() string {
	var args []string
	if m.Params != nil {
		args = make([]string, len(m.Params))
		for i, p := range m.Params {
			args[i] = p.format(i + 1)
		}
	} else {
		n := m.Arity
		if n < 0 {
			n = -n
		}
		args = make([]string, n)
		for i := range args {
			args[i] = "arg" + strconv.Itoa(i+1)
		}
	}
	return "(" + strings.Join(args, ", ") + ")"
}

// String returns the unstyled descriptor text.
func (m Method) String() string {
	var sb strings.Builder
	if m.Owner != "" {
		sb.WriteString(m.Owner)
		sb.WriteByte('#')
	}
	sb.WriteString(m.Name)
	sb.WriteString(m.Signature())
	if m.Unbound {
		sb.WriteString(" [unbound]")
	}
	return sb.String()
}

// Inspector is implemented by values that provide their own debugging
// representation. The text is used verbatim.
type Inspector interface {
	Inspect() string
}

// Attributer is implemented by values that declare the attributes shown in
// their tagged form. An error fails the whole value.
type Attributer interface {
	InspectAttributes() ([]Attribute, error)
}

// Attribute is one named attribute of an object. Get, when set, is called
// at render time and takes precedence over Value.
type Attribute struct {
	Name  string
	Value any
	Get   func() (any, error)
}

// Attr returns an attribute with a fixed value.
func Attr(name string, value any) Attribute {
	return Attribute{Name: name, Value: value}
}

// LazyAttr returns an attribute read through get.
func LazyAttr(name string, get func() (any, error)) Attribute {
	return Attribute{Name: name, Get: get}
}

func (a Attribute) resolve() (v any, err error) {
	if a.Get == nil {
		return a.Value, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return a.Get()
}
