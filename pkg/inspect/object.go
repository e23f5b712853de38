package inspect

import (
	"fmt"
	"reflect"

	"github.com/dkoosis/peek/pkg/palette"
)

type attribute struct {
	name string
	get  func() (any, error)
}

// formatObject is the fallback for values no specialized formatter handles
// and for values that describe themselves through Inspector or Attributer.
func formatObject(s *state, v any) {
	rv := reflect.ValueOf(v)
	s.log.Debug().Str("path", s.path).Str("type", typeString(rv)).Msg("generic object")

	switch x := v.(type) {
	case Inspector:
		s.verbatim(x.Inspect)
		return
	case fmt.GoStringer:
		s.verbatim(x.GoString)
		return
	}

	key, ref := refKey(rv)
	name := objectTypeName(rv)
	if ref && !s.enter(key) {
		s.text("#<" + s.style(palette.Class, name) + ":" + s.identity(rv) + " ...>")
		return
	}
	if ref {
		defer s.leave(key)
	}

	attrs, err := attributesOf(v, rv)
	if err != nil {
		s.fail(err)
		return
	}
	if st, ok := v.(fmt.Stringer); ok && len(attrs) == 0 {
		s.verbatim(st.String)
		return
	}
	if _, explicit := v.(Attributer); !explicit && rv.Kind() == reflect.Pointer && rv.Elem().Kind() != reflect.Struct {
		s.text("&")
		s.render(valueOf(rv.Elem()))
		return
	}

	tag := "#<" + s.style(palette.Class, name) + ":" + s.identity(rv)
	if len(attrs) == 0 {
		s.text(tag + ">")
		return
	}
	if s.tooDeep() {
		s.text(tag + " ...>")
		return
	}
	s.entries(tag, ">", len(attrs), func(i int) {
		a := attrs[i]
		s.emit(palette.Field, a.name)
		s.text(" = ")
		s.b.Group(s.cfg.Indent, "", "", func() {
			s.at("."+a.name, func() {
				val, err := a.get()
				if err != nil {
					s.fail(err)
					return
				}
				s.render(val)
			})
		})
	})
}

// verbatim emits the text returned by a user method, unstyled.
func (s *state) verbatim(fn func() string) {
	out, err := call(fn)
	if err != nil {
		s.fail(err)
		return
	}
	s.text(out)
}

// objectTypeName names pointers to structs after the struct.
func objectTypeName(rv reflect.Value) string {
	t := rv.Type()
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		t = t.Elem()
	}
	return typeName(t)
}

// attributesOf lists the attributes of an object: the declared ones for an
// Attributer, otherwise the visible fields of the struct it points to.
func attributesOf(v any, rv reflect.Value) (attrs []attribute, err error) {
	if a, ok := v.(Attributer); ok {
		var list []Attribute
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = recovered(r)
				}
			}()
			list, err = a.InspectAttributes()
		}()
		if err != nil {
			return nil, fmt.Errorf("list attributes: %w", err)
		}
		attrs = make([]attribute, len(list))
		for i, at := range list {
			attrs[i] = attribute{name: at.Name, get: at.resolve}
		}
		return attrs, nil
	}
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, nil
	}
	for _, f := range visibleFields(rv.Elem()) {
		value := f.value
		attrs = append(attrs, attribute{name: f.name, get: func() (any, error) { return value, nil }})
	}
	return attrs, nil
}
