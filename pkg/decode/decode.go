// Package decode turns structured documents into values the inspect
// package renders well: mappings become inspect.OrderedMap where the format
// keeps key order, integers too large for int64 become *big.Int, and dates
// become inspect.Date or time.Time.
package decode

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// Format names an input format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	XML  Format = "xml"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, TOML, XML}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case JSON, YAML, TOML, XML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml, toml or xml)", name)
}

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	case ".toml":
		return TOML, true
	case ".xml":
		return XML, true
	}
	return "", false
}

var (
	tomlTable = regexp.MustCompile(`^\s*\[{1,2}[A-Za-z_][A-Za-z0-9_.-]*\]{1,2}\s*$`)
	tomlKey   = regexp.MustCompile(`^\s*[A-Za-z0-9_."-]+\s*=`)
)

// Sniff guesses the format of data from its first significant bytes.
// Anything unrecognized is treated as YAML.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return YAML
	case trimmed[0] == '<':
		return XML
	case trimmed[0] == '{':
		return JSON
	}
	line := firstLine(trimmed)
	switch {
	case tomlTable.Match(line), tomlKey.Match(line):
		return TOML
	case len(line) > 0 && line[0] == '[':
		return JSON
	}
	return YAML
}

// firstLine returns the first line that is neither blank nor a # comment.
func firstLine(b []byte) []byte {
	for line := range bytes.Lines(b) {
		line = bytes.TrimRight(line, "\r\n")
		t := bytes.TrimSpace(line)
		if len(t) == 0 || t[0] == '#' {
			continue
		}
		return line
	}
	return nil
}

// Decode reads all of r and decodes it as f.
func Decode(r io.Reader, f Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Bytes(data, f)
}

// Bytes decodes data as f.
func Bytes(data []byte, f Format) (any, error) {
	var (
		v   any
		err error
	)
	switch f {
	case JSON:
		v, err = decodeJSON(data)
	case YAML:
		v, err = decodeYAML(data)
	case TOML:
		v, err = decodeTOML(data)
	case XML:
		v, err = decodeXML(data)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return v, nil
}
