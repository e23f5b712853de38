package decode

import (
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dkoosis/peek/pkg/inspect"
)

// decodeTOML decodes data into maps and lists. TOML tables come back as Go
// maps, so their keys render sorted rather than in file order.
func decodeTOML(data []byte) (any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return tomlValue(doc), nil
}

func tomlValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = tomlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = tomlValue(e)
		}
		return out
	case toml.LocalDate:
		return inspect.NewDate(x.Year, time.Month(x.Month), x.Day)
	case toml.LocalDateTime:
		return x.AsTime(time.UTC)
	case toml.LocalTime:
		return x.String()
	default:
		return v
	}
}
