package inspect

import (
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/dkoosis/peek/pkg/palette"
)

// qualifier matches the package part of a qualified type name, including
// import paths inside generic type arguments.
var qualifier = regexp.MustCompile(`(?:[A-Za-z0-9_.~-]+/)*[A-Za-z_][A-Za-z0-9_]*\.`)

// typeName returns t's name without package qualifiers.
func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return qualifier.ReplaceAllString(t.String(), "")
}

// formatType renders a type descriptor. Interfaces are modules; named
// non-struct types show their underlying kind as a supertype.
func formatType(s *state, v any) {
	t := v.(reflect.Type)
	name := typeName(t)
	switch {
	case t.Kind() == reflect.Interface:
		s.emit(palette.Module, name)
	case t.Name() != "" && t.Kind() != reflect.Struct && t.Name() != t.Kind().String():
		s.emit(palette.Class, name+" < "+t.Kind().String())
	default:
		s.emit(palette.Class, name)
	}
}

func formatMethod(s *state, v any) {
	var m Method
	switch x := v.(type) {
	case Method:
		m = x
	case *Method:
		m = *x
	default:
		m = DescribeFunc(v)
	}
	if m.Owner != "" {
		s.emit(palette.Class, m.Owner)
		s.text("#")
	}
	s.emit(palette.Method, m.Name)
	s.emit(palette.Args, m.Signature())
	if m.Unbound {
		s.text(" [unbound]")
	}
}

func formatException(s *state, v any) {
	err := v.(error)
	s.emit(palette.Class, strings.TrimPrefix(typeName(reflect.TypeOf(v)), "*"))
	s.text(": ")
	msg, cerr := call(err.Error)
	if cerr != nil {
		s.fail(cerr)
		return
	}
	s.emit(palette.Exception, msg)
}

var closureName = regexp.MustCompile(`\.(?:func|gowrap|deferwrap)\d+(?:\.\d+)*$`)

// DescribeFunc builds a method descriptor for a func value from its runtime
// symbol name and its type. Method values (x.M) are bound; method
// expressions (T.M) are unbound and drop the receiver parameter. Go keeps
// no parameter names, so every parameter renders as argN.
func DescribeFunc(fn any) Method {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return Method{Name: "func"}
	}
	m := Method{Name: "func"}
	if rf := runtime.FuncForPC(rv.Pointer()); rf != nil {
		m.Owner, m.Name, m.Unbound = splitFuncName(rf.Name())
	}

	t := rv.Type()
	first := 0
	if m.Unbound && t.NumIn() > 0 {
		first = 1
	}
	m.Params = make([]Param, 0, t.NumIn()-first)
	for i := first; i < t.NumIn(); i++ {
		kind := ParamRequired
		if t.IsVariadic() && i == t.NumIn()-1 {
			kind = ParamRest
		}
		m.Params = append(m.Params, Param{Kind: kind})
	}
	m.Arity = len(m.Params)
	if t.IsVariadic() {
		m.Arity = -m.Arity
	}
	return m
}

// splitFuncName splits a runtime symbol such as
// "github.com/x/y.(*T).Method-fm" into owner and name.
func splitFuncName(full string) (owner, name string, unbound bool) {
	full = strings.ReplaceAll(full, "[...]", "")
	bound := strings.HasSuffix(full, "-fm")
	full = strings.TrimSuffix(full, "-fm")

	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	pkg, rest, ok := strings.Cut(full, ".")
	if !ok {
		return "", full, false
	}
	if closureName.MatchString("." + rest) || !strings.Contains(rest, ".") {
		return pkg, rest, false
	}
	i := strings.LastIndex(rest, ".")
	recv := strings.TrimSuffix(strings.TrimPrefix(rest[:i], "(*"), ")")
	return recv, rest[i+1:], !bound
}
