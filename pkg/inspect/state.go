package inspect

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/dkoosis/peek/pkg/doc"
	"github.com/dkoosis/peek/pkg/palette"
)

// visitKey identifies a reference-shaped value. Slices sharing a backing
// array but differing in length are different values.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// state is the per-call rendering state. A Printer allocates one for every
// Render, so nothing here is shared between goroutines.
type state struct {
	cfg    *Config
	b      *doc.Builder
	log    zerolog.Logger
	path   string
	depth  int
	seq    int
	active map[visitKey]struct{}
	errs   []error
}

func newState(cfg *Config) *state {
	return &state{
		cfg:    cfg,
		b:      doc.New(),
		log:    cfg.Logger.With().Str("component", "inspect").Logger(),
		path:   "$",
		active: make(map[visitKey]struct{}),
	}
}

func (s *state) render(v any) {
	formatters[Classify(v)](s, v)
}

func (s *state) style(c palette.Category, text string) string {
	return s.cfg.Styler.Apply(s.cfg.Palette.Resolve(c), text)
}

// emit writes text styled for category c.
func (s *state) emit(c palette.Category, text string) {
	s.b.Text(s.style(c, text))
}

func (s *state) text(t string) {
	s.b.Text(t)
}

// at runs fn with seg appended to the current path.
func (s *state) at(seg string, fn func()) {
	saved := s.path
	s.path += seg
	defer func() { s.path = saved }()
	fn()
}

// fail records err at the current path and leaves a placeholder in the
// output.
func (s *state) fail(err error) {
	s.errs = append(s.errs, &PathError{Path: s.path, Err: err})
	s.emit(palette.Exception, "<error: "+err.Error()+">")
}

// entries emits a broken group of n entries separated by commas.
func (s *state) entries(open, close string, n int, entry func(i int)) {
	s.b.Group(s.cfg.Indent, open, close, func() {
		s.depth++
		defer func() { s.depth-- }()
		for i := range n {
			s.b.Breakable()
			entry(i)
			if i < n-1 {
				s.text(",")
			}
		}
	})
}

// depthCeiling bounds nesting even when MaxDepth is unlimited. Values with
// no reference identity, such as a struct Attributer listing fresh copies of
// itself, escape cycle detection and would otherwise exhaust the stack.
const depthCeiling = 1000

func (s *state) tooDeep() bool {
	if (s.cfg.MaxDepth > 0 && s.depth >= s.cfg.MaxDepth) || s.depth >= depthCeiling {
		s.log.Debug().Str("path", s.path).Int("depth", s.depth).Msg("max depth reached")
		return true
	}
	return false
}

// enter marks key as being on the current path. It reports false when key
// is already there, meaning the value contains itself.
func (s *state) enter(key visitKey) bool {
	if _, ok := s.active[key]; ok {
		s.log.Debug().Str("path", s.path).Str("type", key.typ.String()).Msg("cycle detected")
		return false
	}
	s.active[key] = struct{}{}
	return true
}

func (s *state) leave(key visitKey) {
	delete(s.active, key)
}

// identity returns the identity token for an object: its address when it
// has one, otherwise a number unique within this render.
func (s *state) identity(rv reflect.Value) string {
	if _, ok := refKey(rv); ok {
		return fmt.Sprintf("0x%x", rv.Pointer())
	}
	s.seq++
	return fmt.Sprintf("0x%x", s.seq)
}

// refKey returns the cycle key for reference-shaped values.
func refKey(rv reflect.Value) (visitKey, bool) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type(), n: rv.Len()}, true
	default:
		return visitKey{}, false
	}
}

// call runs a user method, turning a panic into an error.
func call(fn func() string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn(), nil
}

// valueOf returns the interface value held by rv, or nil when rv cannot be
// read.
func valueOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}
