package inspect

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dkoosis/peek/pkg/palette"
)

func formatNil(s *state, _ any) {
	s.emit(palette.Nil, "nil")
}

func formatSymbol(s *state, v any) {
	s.emit(palette.Symbol, v.(Symbol).String())
}

// Dates and times use the ctime layout.
func formatDate(s *state, v any) {
	var d Date
	switch x := v.(type) {
	case Date:
		d = x
	case *Date:
		d = *x
	}
	s.emit(palette.Date, d.Time().Format(time.ANSIC))
}

func formatTime(s *state, v any) {
	switch x := v.(type) {
	case time.Time:
		s.emit(palette.Time, x.Format(time.ANSIC))
	case *time.Time:
		s.emit(palette.Time, x.Format(time.ANSIC))
	case time.Duration:
		s.emit(palette.Time, x.String())
	}
}

// formatRational renders the exact fraction followed by its approximation.
func formatRational(s *state, v any) {
	var r *big.Rat
	switch x := v.(type) {
	case *big.Rat:
		r = x
	case big.Rat:
		r = &x
	}
	f, _ := r.Float64()
	s.emit(palette.Rational, r.String()+" ≈ "+formatFloat(f, 64))
}

func formatBignum(s *state, v any) {
	var text string
	switch x := v.(type) {
	case *big.Int:
		text = x.String()
	case big.Int:
		text = x.String()
	case *big.Float:
		text = x.Text('g', -1)
	case big.Float:
		text = x.Text('g', -1)
	}
	s.emit(palette.Bignum, text)
}

func formatBool(s *state, v any) {
	if reflect.ValueOf(v).Bool() {
		s.emit(palette.True, "true")
		return
	}
	s.emit(palette.False, "false")
}

func formatNumeric(s *state, v any) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.emit(palette.Integer, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s.emit(palette.Integer, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		s.emit(palette.Float, formatFloat(rv.Float(), 32))
	case reflect.Float64:
		s.emit(palette.Float, formatFloat(rv.Float(), 64))
	case reflect.Complex64:
		s.emit(palette.Numeric, strconv.FormatComplex(rv.Complex(), 'g', -1, 64))
	default:
		s.emit(palette.Numeric, strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
	}
}

// formatFloat returns the shortest representation of f, keeping a decimal
// point so floats never read as integers.
func formatFloat(f float64, bits int) string {
	text := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(text, ".eIN") {
		text += ".0"
	}
	return text
}

func formatString(s *state, v any) {
	s.emit(palette.String, strconv.Quote(reflect.ValueOf(v).String()))
}
