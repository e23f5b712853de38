package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/dkoosis/peek/pkg/inspect"
)

// decodeJSON walks the token stream so objects keep their key order.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return jsonObject(dec)
		case '[':
			return jsonArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		return number(t.String()), nil
	default:
		return t, nil
	}
}

func jsonObject(dec *json.Decoder) (inspect.OrderedMap, error) {
	m := inspect.OrderedMap{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		v, err := jsonValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m = append(m, inspect.Pair{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func jsonArray(dec *json.Decoder) ([]any, error) {
	list := []any{}
	for dec.More() {
		v, err := jsonValue(dec)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(list), err)
		}
		list = append(list, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return list, nil
}

// number converts a numeric literal to int64, *big.Int or float64,
// whichever holds it exactly.
func number(lit string) any {
	n := json.Number(lit)
	if i, err := n.Int64(); err == nil {
		return i
	}
	if b, ok := new(big.Int).SetString(lit, 10); ok {
		return b
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return lit
}
