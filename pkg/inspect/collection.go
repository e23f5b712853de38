package inspect

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dkoosis/peek/pkg/palette"
)

func formatList(s *state, v any) {
	rv := reflect.ValueOf(v)
	n := rv.Len()
	if n == 0 {
		s.text("[]")
		return
	}
	if key, ok := refKey(rv); ok {
		if !s.enter(key) {
			s.text("[...]")
			return
		}
		defer s.leave(key)
	}
	if s.tooDeep() {
		s.text("[...]")
		return
	}
	width := len(strconv.Itoa(n - 1))
	s.entries("[", "]", n, func(i int) {
		s.text(fmt.Sprintf("[%*d] ", width, i))
		s.at("["+strconv.Itoa(i)+"]", func() {
			s.render(valueOf(rv.Index(i)))
		})
	})
}

func formatMap(s *state, v any) {
	rv := reflect.ValueOf(v)
	if rv.Len() == 0 {
		s.text("{}")
		return
	}
	if key, ok := refKey(rv); ok {
		if !s.enter(key) {
			s.text("{...}")
			return
		}
		defer s.leave(key)
	}
	if s.tooDeep() {
		s.text("{...}")
		return
	}
	// MapIndex cannot find NaN keys, so values are taken from the iterator.
	entries := make([][2]reflect.Value, 0, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		entries = append(entries, [2]reflect.Value{it.Key(), it.Value()})
	}
	slices.SortFunc(entries, func(a, b [2]reflect.Value) int {
		return compareKeys(a[0], b[0])
	})
	s.entries("{", "}", len(entries), func(i int) {
		k := valueOf(entries[i][0])
		s.pair(k, keySegment(k), valueOf(entries[i][1]))
	})
}

func formatOrderedMap(s *state, v any) {
	m := v.(OrderedMap)
	if len(m) == 0 {
		s.text("{}")
		return
	}
	if key, ok := refKey(reflect.ValueOf(m)); ok {
		if !s.enter(key) {
			s.text("{...}")
			return
		}
		defer s.leave(key)
	}
	if s.tooDeep() {
		s.text("{...}")
		return
	}
	s.entries("{", "}", len(m), func(i int) {
		s.pair(m[i].Key, keySegment(m[i].Key), m[i].Value)
	})
}

// pair emits key => value. The key is rendered like any other value.
func (s *state) pair(key any, seg string, value any) {
	s.at(seg, func() {
		s.render(key)
		s.text(" => ")
		s.render(value)
	})
}

func keySegment(key any) string {
	if str, ok := key.(string); ok {
		return "[" + strconv.Quote(str) + "]"
	}
	return fmt.Sprintf("[%v]", key)
}

// formatRecord renders a struct as (Type) followed by its fields.
func formatRecord(s *state, v any) {
	rv := reflect.ValueOf(v)
	s.text("(")
	s.emit(palette.Class, typeName(rv.Type()))
	s.text(") ")
	fields := visibleFields(rv)
	if len(fields) == 0 {
		s.text("{}")
		return
	}
	if s.tooDeep() {
		s.text("{...}")
		return
	}
	s.entries("{", "}", len(fields), func(i int) {
		f := fields[i]
		s.emit(palette.Field, f.name)
		s.text(" => ")
		s.at("."+f.name, func() {
			s.render(f.value)
		})
	})
}

type field struct {
	name  string
	value any
}

// visibleFields returns the exported fields of the struct rv, honoring
// peek struct tags: peek:"name" renames, peek:"-" skips and
// peek:",omitempty" drops zero values.
func visibleFields(rv reflect.Value) []field {
	t := rv.Type()
	var out []field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, omitEmpty, skip := parseTag(sf.Tag.Get("peek"))
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out = append(out, field{name: name, value: valueOf(fv)})
	}
	return out
}

func parseTag(tag string) (name string, omitEmpty, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// compareKeys orders map keys: numbers numerically, strings and booleans by
// value, anything else by its printed form and then its type.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankBool:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	case rankNumber:
		return cmp.Compare(number(a), number(b))
	case rankString:
		return strings.Compare(a.String(), b.String())
	}
	if c := strings.Compare(fmt.Sprint(valueOf(a)), fmt.Sprint(valueOf(b))); c != 0 {
		return c
	}
	return strings.Compare(typeString(a), typeString(b))
}

const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func keyRank(rv reflect.Value) int {
	switch rv.Kind() {
	case reflect.Invalid:
		return rankNil
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	default:
		return rankOther
	}
}

func number(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return float64(rv.Uint())
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func typeString(rv reflect.Value) string {
	if !rv.IsValid() {
		return ""
	}
	return rv.Type().String()
}
