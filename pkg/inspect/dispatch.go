package inspect

import (
	"math/big"
	"reflect"
	"time"
)

// Kind is the rendering strategy selected for a value.
type Kind int

// Kinds in classification priority order. The first kind whose shape
// matches a value wins.
const (
	KindNil Kind = iota
	KindSymbol
	KindDate
	KindTime
	KindRational
	KindBignum
	KindType
	KindMethod
	KindException
	KindExplicit
	KindBool
	KindNumeric
	KindString
	KindOrderedMap
	KindList
	KindMap
	KindRecord
	KindObject
)

var kindNames = [...]string{
	KindNil:        "nil",
	KindSymbol:     "symbol",
	KindDate:       "date",
	KindTime:       "time",
	KindRational:   "rational",
	KindBignum:     "bignum",
	KindType:       "type",
	KindMethod:     "method",
	KindException:  "exception",
	KindExplicit:   "explicit",
	KindBool:       "bool",
	KindNumeric:    "numeric",
	KindString:     "string",
	KindOrderedMap: "ordered-map",
	KindList:       "list",
	KindMap:        "map",
	KindRecord:     "record",
	KindObject:     "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type classifier struct {
	kind  Kind
	match func(v any, rv reflect.Value) bool
}

// classifiers is checked in order; KindObject is the fallback.
var classifiers = []classifier{
	{KindNil, isNil},
	{KindSymbol, func(v any, _ reflect.Value) bool {
		_, ok := v.(Symbol)
		return ok
	}},
	{KindDate, func(v any, _ reflect.Value) bool {
		switch v.(type) {
		case Date, *Date:
			return true
		}
		return false
	}},
	{KindTime, func(v any, _ reflect.Value) bool {
		switch v.(type) {
		case time.Time, *time.Time, time.Duration:
			return true
		}
		return false
	}},
	{KindRational, func(v any, _ reflect.Value) bool {
		switch v.(type) {
		case *big.Rat, big.Rat:
			return true
		}
		return false
	}},
	{KindBignum, func(v any, _ reflect.Value) bool {
		switch v.(type) {
		case *big.Int, big.Int, *big.Float, big.Float:
			return true
		}
		return false
	}},
	{KindType, func(v any, _ reflect.Value) bool {
		_, ok := v.(reflect.Type)
		return ok
	}},
	{KindMethod, func(v any, rv reflect.Value) bool {
		switch v.(type) {
		case Method, *Method:
			return true
		}
		return rv.Kind() == reflect.Func
	}},
	{KindException, func(v any, _ reflect.Value) bool {
		_, ok := v.(error)
		return ok
	}},
	{KindExplicit, func(v any, _ reflect.Value) bool {
		switch v.(type) {
		case Attributer, Inspector:
			return true
		}
		return false
	}},
	{KindBool, kindIn(reflect.Bool)},
	{KindNumeric, kindIn(
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
	)},
	{KindString, kindIn(reflect.String)},
	{KindOrderedMap, func(v any, _ reflect.Value) bool {
		_, ok := v.(OrderedMap)
		return ok
	}},
	{KindList, kindIn(reflect.Slice, reflect.Array)},
	{KindMap, kindIn(reflect.Map)},
	{KindRecord, kindIn(reflect.Struct)},
}

func kindIn(kinds ...reflect.Kind) func(any, reflect.Value) bool {
	return func(_ any, rv reflect.Value) bool {
		for _, k := range kinds {
			if rv.Kind() == k {
				return true
			}
		}
		return false
	}
}

// isNil matches untyped nil and nil pointers, funcs, chans and interfaces.
// Nil slices and maps are empty collections, not nil.
func isNil(v any, rv reflect.Value) bool {
	if v == nil {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Classify returns the kind used to render v.
func Classify(v any) Kind {
	rv := reflect.ValueOf(v)
	for _, c := range classifiers {
		if c.match(v, rv) {
			return c.kind
		}
	}
	return KindObject
}

type formatFunc func(s *state, v any)

// formatters is filled in init because the formatters recurse through
// state.render, which reads this table.
var formatters map[Kind]formatFunc

func init() {
	formatters = map[Kind]formatFunc{
		KindNil:        formatNil,
		KindSymbol:     formatSymbol,
		KindDate:       formatDate,
		KindTime:       formatTime,
		KindRational:   formatRational,
		KindBignum:     formatBignum,
		KindType:       formatType,
		KindMethod:     formatMethod,
		KindException:  formatException,
		KindExplicit:   formatObject,
		KindBool:       formatBool,
		KindNumeric:    formatNumeric,
		KindString:     formatString,
		KindOrderedMap: formatOrderedMap,
		KindList:       formatList,
		KindMap:        formatMap,
		KindRecord:     formatRecord,
		KindObject:     formatObject,
	}
}
