package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/peek/pkg/inspect"
)

// decodeYAML decodes every document in data. A single document is returned
// as is; several are returned as a list.
func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := newYAMLWalker().value(&n)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
	switch len(docs) {
	case 0:
		return nil, nil
	case 1:
		return docs[0], nil
	default:
		return docs, nil
	}
}

// yamlWalker converts a node tree to values. It expands aliases itself, so
// it guards against anchors that contain themselves and against alias
// bombs, using the same expansion ratio limits as yaml.v3.
type yamlWalker struct {
	expanding map[*yaml.Node]bool
	depth     int // nesting of alias expansions
	nodes     int
	aliased   int
}

func newYAMLWalker() *yamlWalker {
	return &yamlWalker{expanding: make(map[*yaml.Node]bool)}
}

const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
)

// allowedAliasRatio returns the share of nodes that may come from alias
// expansion. Small documents may alias freely; large ones much less.
func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioRangeLow:
		return 0.99
	case nodes >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(nodes-aliasRatioRangeLow)/float64(aliasRatioRangeHigh-aliasRatioRangeLow))
	}
}

func (w *yamlWalker) value(n *yaml.Node) (any, error) {
	w.nodes++
	if w.depth > 0 {
		w.aliased++
	}
	if w.aliased > 100 && w.nodes > 1000 && float64(w.aliased)/float64(w.nodes) > allowedAliasRatio(w.nodes) {
		return nil, errors.New("document contains excessive aliasing")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		target := n.Alias
		if w.expanding[target] {
			return nil, fmt.Errorf("line %d: anchor %q contains itself", n.Line, n.Value)
		}
		w.expanding[target] = true
		w.depth++
		v, err := w.value(target)
		w.depth--
		delete(w.expanding, target)
		return v, err
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.value(c)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		m := make(inspect.OrderedMap, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := w.value(n.Content[i])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Content[i].Line, err)
			}
			v, err := w.value(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%v: %w", k, err)
			}
			m = append(m, inspect.Pair{Key: k, Value: v})
		}
		return m, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

var integerLiteral = regexp.MustCompile(`^[-+]?[0-9][0-9_]*$`)

func bigInt(lit string) (*big.Int, bool) {
	return new(big.Int).SetString(strings.ReplaceAll(lit, "_", ""), 0)
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		if b, ok := bigInt(n.Value); ok {
			return b, nil
		}
	case "!!float":
		// Integers beyond 64 bits resolve as floats.
		if integerLiteral.MatchString(n.Value) {
			if b, ok := bigInt(n.Value); ok {
				return b, nil
			}
		}
	case "!!str":
		return n.Value, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			if _, err := time.Parse(time.DateOnly, n.Value); err == nil {
				return inspect.DateOf(t), nil
			}
			return t, nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}
