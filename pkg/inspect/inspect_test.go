package inspect

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/peek/pkg/palette"
)

var plain = New(WithStyler(palette.Plain()))

var address = regexp.MustCompile(`0x[0-9a-f]+`)

func render(t *testing.T, p *Printer, v any) string {
	t.Helper()
	out, err := p.Render(v)
	require.NoError(t, err)
	return out
}

func diff(t *testing.T, want, got string) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("output mismatch (-want +got):\n%s", d)
	}
}

type person struct {
	FirstName string `peek:"first_name"`
	LastName  string `peek:"last_name"`
}

type empty struct{}

type label string

type opaque struct {
	secret int
}

type node struct {
	Name     string
	Children []int
}

type link struct {
	Name string
	Next *link
}

func TestRender_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"untyped nil", nil, "nil"},
		{"nil pointer", (*person)(nil), "nil"},
		{"nil func", (func())(nil), "nil"},
		{"nil error pointer", (*PathError)(nil), "nil"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative", int8(-3), "-3"},
		{"uint", uint64(math.MaxUint64), "18446744073709551615"},
		{"float", 1.5, "1.5"},
		{"whole float", 2.0, "2.0"},
		{"float32", float32(0.1), "0.1"},
		{"large float", 1e50, "1e+50"},
		{"infinity", math.Inf(1), "+Inf"},
		{"complex", complex(3, 2), "(3+2i)"},
		{"string", "some\nthing", `"some\nthing"`},
		{"named string", label("x"), `"x"`},
		{"symbol", Symbol("alpha"), ":alpha"},
		{"quoted symbol", Symbol("two words"), `:"two words"`},
		{"bignum", new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil), "100000000000000000000"},
		{"big float", big.NewFloat(2.5), "2.5"},
		{"rational", big.NewRat(3, 4), "3/4 ≈ 0.75"},
		{"date", NewDate(2011, time.October, 24), "Mon Oct 24 00:00:00 2011"},
		{"time", time.Date(2011, time.October, 24, 13, 5, 9, 0, time.UTC), "Mon Oct 24 13:05:09 2011"},
		{"duration", 1500 * time.Millisecond, "1.5s"},
		{"error", errors.New("could not find a good message"), "errorString: could not find a good message"},
		{"month is numeric", time.March, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, plain, tt.in))
		})
	}
}

func TestRender_Types(t *testing.T) {
	tests := []struct {
		name string
		in   reflect.Type
		want string
	}{
		{"builtin", reflect.TypeOf(0), "int"},
		{"named scalar", reflect.TypeOf(time.Duration(0)), "Duration < int64"},
		{"struct", reflect.TypeOf(person{}), "person"},
		{"composite", reflect.TypeOf(map[string]*big.Int{}), "map[string]*Int"},
		{"interface", reflect.TypeOf((*error)(nil)).Elem(), "error"},
		{"qualified interface", reflect.TypeOf((*Attributer)(nil)).Elem(), "Attributer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, plain, tt.in))
		})
	}
}

func TestRender_TypeCategories(t *testing.T) {
	p := New(
		WithStyler(palette.NewStyler(termenv.ANSI)),
		WithPalette(palette.New(map[palette.Category]palette.Rule{palette.Module: {"yellow"}})),
	)
	assert.Contains(t, render(t, p, reflect.TypeOf((*error)(nil)).Elem()), "\x1b[")
	assert.Equal(t, "int", render(t, p, reflect.TypeOf(0)), "class has no rule here")
}

func TestRender_EmptyContainers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"slice", []int{}, "[]"},
		{"nil slice", []string(nil), "[]"},
		{"array", [0]int{}, "[]"},
		{"map", map[string]int{}, "{}"},
		{"nil map", map[string]int(nil), "{}"},
		{"ordered map", OrderedMap{}, "{}"},
		{"record", empty{}, "(empty) {}"},
		{"record with hidden fields", opaque{secret: 1}, "(opaque) {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, plain, tt.in))
		})
	}

	t.Run("object", func(t *testing.T) {
		out := render(t, plain, &opaque{secret: 1})
		assert.Regexp(t, `^#<opaque:0x[0-9a-f]+>$`, out)
	})
}

func TestRender_List(t *testing.T) {
	diff(t, "[\n  [0] 1,\n  [1] \"two\",\n  [2] nil\n]", render(t, plain, []any{1, "two", nil}))
}

func TestRender_IndexAlignment(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 101} {
		out := render(t, plain, make([]int, n))
		width := len(strconv.Itoa(n - 1))
		lines := strings.Split(out, "\n")
		require.Len(t, lines, n+2)
		for i, line := range lines[1 : n+1] {
			idx := strings.TrimPrefix(line, "  [")
			idx, _, _ = strings.Cut(idx, "]")
			assert.Len(t, idx, width, "n=%d line %d: %q", n, i, line)
			assert.Equal(t, strconv.Itoa(i), strings.TrimSpace(idx))
		}
	}
}

func TestRender_SeparatorCount(t *testing.T) {
	inputs := []struct {
		name string
		in   any
		n    int
	}{
		{"list", []int{1, 2, 3, 4}, 4},
		{"map", map[int]bool{1: true, 2: false, 3: true}, 3},
		{"record", person{"John", "Smith"}, 2},
		{"single", []int{7}, 1},
	}
	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, plain, tt.in)
			lines := strings.Split(out, "\n")
			seps := 0
			for _, line := range lines {
				if strings.HasSuffix(line, ",") {
					seps++
				}
			}
			assert.Equal(t, tt.n-1, seps)
			assert.False(t, strings.HasSuffix(lines[len(lines)-2], ","), "no separator after the last entry")
		})
	}
}

func TestRender_NestedMap(t *testing.T) {
	out := render(t, plain, map[string]string{"beta": "bar", "alpha": "foo"})
	diff(t, "{\n  \"alpha\" => \"foo\",\n  \"beta\" => \"bar\"\n}", out)

	nested := map[string]any{
		"alpha": "foo",
		"list":  []any{1, 3},
		"text":  "some\nthing",
	}
	want := `{
  "alpha" => "foo",
  "list" => [
    [0] 1,
    [1] 3
  ],
  "text" => "some\nthing"
}`
	diff(t, want, render(t, plain, nested))
}

func TestRender_MapKeyOrder(t *testing.T) {
	out := render(t, plain, map[any]int{"a": 1, 10: 2, 2: 3, true: 4})
	diff(t, "{\n  true => 4,\n  2 => 3,\n  10 => 2,\n  \"a\" => 1\n}", out)
}

func TestRender_OrderedMapKeepsOrder(t *testing.T) {
	m := OrderedMap{{Key: "zeta", Value: 1}, {Key: "alpha", Value: OrderedMap{{Key: "x", Value: true}}}}
	want := `{
  "zeta" => 1,
  "alpha" => {
    "x" => true
  }
}`
	diff(t, want, render(t, plain, m))

	v, ok := m.Get("zeta")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = m.Get([]int{1})
	assert.False(t, ok)
	assert.Equal(t, []any{"zeta", "alpha"}, m.Keys())
}

func TestRender_Record(t *testing.T) {
	out := render(t, plain, person{FirstName: "John", LastName: "Smith"})
	diff(t, "(person) {\n  first_name => \"John\",\n  last_name => \"Smith\"\n}", out)
}

func TestRender_RecordTags(t *testing.T) {
	type tagged struct {
		ID       int    `peek:"id"`
		Password string `peek:"-"`
		Note     string `peek:",omitempty"`
		Count    int    `peek:"count,omitempty"`
		hidden   bool
	}
	diff(t, "(tagged) {\n  id => 1\n}", render(t, plain, tagged{ID: 1, Password: "x", hidden: true}))
	diff(t, "(tagged) {\n  id => 1,\n  Note => \"n\",\n  count => 2\n}",
		render(t, plain, tagged{ID: 1, Note: "n", Count: 2}))
}

func TestRender_Methods(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"arity one", Method{Owner: "Integer", Name: "succ", Arity: 1}, "Integer#succ(arg1)"},
		{"arity zero", Method{Owner: "Time", Name: "now"}, "Time#now()"},
		{"negative arity", Method{Owner: "Kernel", Name: "pp", Arity: -2}, "Kernel#pp(arg1, arg2)"},
		{"declared params", &Method{Owner: "Array", Name: "fill", Params: []Param{
			{Kind: ParamRequired, Name: "a"},
			{Kind: ParamOptional, Name: "b"},
			{Kind: ParamRest, Name: "rest"},
			{Kind: ParamBlock, Name: "blk"},
		}}, "Array#fill(a, b = ?, *rest, &blk)"},
		{"unnamed params", Method{Owner: "Array", Name: "each", Params: []Param{{}, {Kind: ParamBlock}}, Unbound: true},
			"Array#each(arg1, &arg2) [unbound]"},
		{"empty params beat arity", Method{Name: "f", Params: []Param{}, Arity: 3}, "f()"},
		{"func", strings.ToUpper, "strings#ToUpper(arg1)"},
		{"variadic func", errors.Join, "errors#Join(*arg1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, plain, tt.in))
		})
	}
}

func TestDescribeFunc(t *testing.T) {
	var sb strings.Builder

	bound := DescribeFunc(sb.Len)
	assert.Equal(t, "Builder", bound.Owner)
	assert.Equal(t, "Len", bound.Name)
	assert.False(t, bound.Unbound)
	assert.Equal(t, 0, bound.Arity)

	unbound := DescribeFunc((*strings.Builder).WriteString)
	assert.Equal(t, "Builder#WriteString(arg1) [unbound]", unbound.String())

	variadic := DescribeFunc(strings.NewReplacer)
	assert.Equal(t, -1, variadic.Arity)
	assert.Equal(t, []Param{{Kind: ParamRest}}, variadic.Params)

	closure := DescribeFunc(func(a, b int) {})
	assert.Equal(t, "inspect", closure.Owner)
	assert.True(t, strings.HasPrefix(closure.Name, "TestDescribeFunc.func"), closure.Name)
	assert.Equal(t, 2, closure.Arity)

	assert.Equal(t, Method{Name: "func"}, DescribeFunc(42))
}

func TestSplitFuncName(t *testing.T) {
	tests := []struct {
		in      string
		owner   string
		name    string
		unbound bool
	}{
		{"strings.ToUpper", "strings", "ToUpper", false},
		{"github.com/dkoosis/peek/pkg/inspect.Render", "inspect", "Render", false},
		{"github.com/dkoosis/peek/pkg/inspect.(*Printer).Render-fm", "Printer", "Render", false},
		{"github.com/dkoosis/peek/pkg/inspect.(*Printer).Render", "Printer", "Render", true},
		{"time.Time.Format", "Time", "Format", true},
		{"main.run.func1", "main", "run.func1", false},
		{"main.run.func1.2", "main", "run.func1.2", false},
		{"slices.Sort[...]", "slices", "Sort", false},
		{"noPackage", "", "noPackage", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			owner, name, unbound := splitFuncName(tt.in)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.unbound, unbound)
		})
	}
}

type pointView struct{ X, Y int }

func (p pointView) Inspect() string { return "P(1,2)" }

type goSyntax struct{ v int }

func (g *goSyntax) GoString() string { return "goSyntax{}" }

type loud struct{ x int }

func (*loud) String() string { panic("too loud") }

type account struct {
	id    int
	owner string
}

func (a account) InspectAttributes() ([]Attribute, error) {
	return []Attribute{
		Attr("id", a.id),
		LazyAttr("balance", func() (any, error) { return nil, errors.New("locked") }),
		Attr("owner", a.owner),
	}, nil
}

// chain lists a fresh copy of itself, so it has no address to detect a
// cycle by.
type chain struct{ n int }

func (c chain) InspectAttributes() ([]Attribute, error) {
	return []Attribute{Attr("next", chain{c.n + 1})}, nil
}

type broken struct{}

func (broken) InspectAttributes() ([]Attribute, error) {
	return nil, errors.New("nope")
}

func TestRender_GenericObject(t *testing.T) {
	t.Run("inspector wins over fields", func(t *testing.T) {
		assert.Equal(t, "P(1,2)", render(t, plain, pointView{1, 2}))
		assert.Equal(t, KindExplicit, Classify(pointView{}))
	})

	t.Run("go stringer", func(t *testing.T) {
		assert.Equal(t, "goSyntax{}", render(t, plain, &goSyntax{}))
	})

	t.Run("stringer without attributes", func(t *testing.T) {
		assert.Equal(t, "hi", render(t, plain, bytes.NewBufferString("hi")))
	})

	t.Run("pointer to scalar", func(t *testing.T) {
		n := 5
		assert.Equal(t, "&5", render(t, plain, &n))
	})

	t.Run("chan", func(t *testing.T) {
		assert.Regexp(t, `^#<chan int:0x[0-9a-f]+>$`, render(t, plain, make(chan int)))
	})

	t.Run("tagged record", func(t *testing.T) {
		out := render(t, plain, &node{Name: "a", Children: []int{1}})
		want := "#<node:0xID\n  Name = \"a\",\n  Children = [\n      [0] 1\n    ]\n>"
		diff(t, want, address.ReplaceAllString(out, "0xID"))
	})

	t.Run("value identities are sequential", func(t *testing.T) {
		out, _ := plain.Render([]any{account{id: 1}, account{id: 2}})
		assert.Contains(t, out, "#<account:0x1")
		assert.Contains(t, out, "#<account:0x2")
	})
}

func TestRender_AttributeFailures(t *testing.T) {
	t.Run("one attribute fails", func(t *testing.T) {
		out, err := plain.Render(account{id: 7, owner: "ann"})
		want := "#<account:0x1\n  id = 7,\n  balance = <error: locked>,\n  owner = \"ann\"\n>"
		diff(t, want, out)

		var pe *PathError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "$.balance", pe.Path)
		assert.EqualError(t, err, "inspect $.balance: locked")
	})

	t.Run("enumeration fails", func(t *testing.T) {
		out, err := plain.Render(broken{})
		assert.Equal(t, "<error: list attributes: nope>", out)
		var pe *PathError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "$", pe.Path)
	})

	t.Run("failures are located and joined", func(t *testing.T) {
		v := []any{1, map[string]any{"k": account{}}, broken{}}
		_, err := plain.Render(v)
		require.Error(t, err)
		var paths []string
		for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
			var pe *PathError
			require.ErrorAs(t, e, &pe)
			paths = append(paths, pe.Path)
		}
		assert.Equal(t, []string{`$[1]["k"].balance`, "$[2]"}, paths)
	})

	t.Run("panicking method", func(t *testing.T) {
		out, err := plain.Render(&loud{})
		assert.Equal(t, "<error: panic: too loud>", out)
		assert.ErrorIs(t, err, errPanic)
	})
}

func TestRender_Cycles(t *testing.T) {
	t.Run("pointer", func(t *testing.T) {
		a := &link{Name: "a"}
		a.Next = a
		out := render(t, plain, a)
		ids := address.FindAllString(out, -1)
		require.Len(t, ids, 2)
		assert.Equal(t, ids[0], ids[1])
		want := "#<link:0xID\n  Name = \"a\",\n  Next = #<link:0xID ...>\n>"
		diff(t, want, address.ReplaceAllString(out, "0xID"))
	})

	t.Run("slice", func(t *testing.T) {
		s := []any{1, nil}
		s[1] = s
		diff(t, "[\n  [0] 1,\n  [1] [...]\n]", render(t, plain, s))
	})

	t.Run("map", func(t *testing.T) {
		m := map[string]any{"n": 1}
		m["self"] = m
		diff(t, "{\n  \"n\" => 1,\n  \"self\" => {...}\n}", render(t, plain, m))
	})

	t.Run("shared but acyclic", func(t *testing.T) {
		shared := &link{Name: "s"}
		out := render(t, plain, []any{shared, shared})
		assert.NotContains(t, out, "...")
		assert.Equal(t, 2, strings.Count(out, `Name = "s"`))
	})
}

func TestRender_MaxDepth(t *testing.T) {
	p := New(WithStyler(palette.Plain()), WithMaxDepth(1))
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"list", [][]int{{1}}, "[\n  [0] [...]\n]"},
		{"map", []any{map[string]int{"a": 1}}, "[\n  [0] {...}\n]"},
		{"record", []person{{"J", "S"}}, "[\n  [0] (person) {...}\n]"},
		{"empty still literal", [][]int{{}}, "[\n  [0] []\n]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, render(t, p, tt.in))
		})
	}
}

func TestRender_Indent(t *testing.T) {
	diff(t, "[\n    [0] 1\n]", render(t, New(WithStyler(palette.Plain()), WithIndent(4)), []int{1}))

	flat := New(WithStyler(palette.Plain()), WithIndent(-3))
	assert.Equal(t, 0, flat.Config().Indent)
	diff(t, "[\n[0] 1\n]", render(t, flat, []int{1}))
}

func fixture() any {
	return []any{
		1, 2, true, 3, false, 4, nil, big.NewRat(3, 4),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(50), nil), complex(3, 2),
		[]any{}, map[string]any{},
		OrderedMap{
			{Key: Symbol("alpha"), Value: "foo"},
			{Key: []int{1, 3}, Value: "some\nthing"},
		},
		NewDate(2011, time.October, 24),
		time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC),
		reflect.TypeOf(""), reflect.TypeOf((*error)(nil)).Elem(), reflect.TypeOf(time.Second),
		Method{Owner: "Integer", Name: "succ", Arity: 0},
		person{"John", "Smith"},
		errors.New("could not find a good message"),
		&node{Name: "n", Children: []int{1, 2}},
		account{id: 1, owner: "ann"},
	}
}

func TestRender_StyleRemovalRoundTrip(t *testing.T) {
	v := fixture()
	colored, err := New(WithStyler(palette.NewStyler(termenv.ANSI256))).Render(v)
	require.Error(t, err, "fixture contains a failing attribute")
	mono, _ := New(WithPalette(palette.Empty())).Render(v)

	assert.Contains(t, colored, "\x1b[")
	assert.NotContains(t, mono, "\x1b[")
	diff(t, mono, ansi.Strip(colored))
}

func TestRender_ConcurrentUse(t *testing.T) {
	p := New()
	want, _ := p.Render(fixture())
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			got, _ := p.Render(fixture())
			if address.ReplaceAllString(got, "") != address.ReplaceAllString(want, "") {
				return errors.New("concurrent render differs")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestRender_LogsDebugEvents(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithStyler(palette.Plain()), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	a := &link{Name: "a"}
	a.Next = a
	_, err := p.Render(a)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"cycle detected"`)
	assert.Contains(t, buf.String(), `"component":"inspect"`)
}

func TestFprintAndMustRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plain.Fprint(&buf, []int{1}))
	assert.Equal(t, "[\n  [0] 1\n]", buf.String())

	buf.Reset()
	err := plain.Fprint(&buf, broken{})
	require.Error(t, err)
	assert.Equal(t, "<error: list attributes: nope>", buf.String())

	assert.Equal(t, "42", plain.MustRender(42))
	assert.Panics(t, func() { plain.MustRender(broken{}) })

	out, err := Render(1.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", ansi.Strip(out))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   any
		want Kind
	}{
		{nil, KindNil},
		{Symbol("a"), KindSymbol},
		{NewDate(2020, 1, 1), KindDate},
		{time.Now(), KindTime},
		{time.Second, KindTime},
		{big.NewRat(1, 2), KindRational},
		{big.NewInt(1), KindBignum},
		{reflect.TypeOf(0), KindType},
		{strings.ToUpper, KindMethod},
		{Method{}, KindMethod},
		{errors.New("x"), KindException},
		{account{}, KindExplicit},
		{true, KindBool},
		{3.5, KindNumeric},
		{"s", KindString},
		{OrderedMap{}, KindOrderedMap},
		{[]int{}, KindList},
		{[2]int{}, KindList},
		{map[int]int{}, KindMap},
		{person{}, KindRecord},
		{&person{}, KindObject},
		{make(chan int), KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestRender_MapNaNKey(t *testing.T) {
	got := render(t, plain, map[float64]int{math.NaN(): 1, 1: 2})
	diff(t, "{\n  NaN => 1,\n  1.0 => 2\n}", got)
}

func TestRender_UnaddressableRecursionStops(t *testing.T) {
	out, err := plain.Render(chain{})
	require.NoError(t, err)
	assert.Contains(t, out, "#<chain:")
	assert.Contains(t, out, " ...>")
	n := strings.Count(out, "next = ")
	assert.Positive(t, n)
	assert.LessOrEqual(t, n, depthCeiling)
}
