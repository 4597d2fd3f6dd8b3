package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// ColumnCode identifies an account statistics column, e.g. I1.
type ColumnCode string

// ColumnDeviceName is the only column the report requests.
const ColumnDeviceName ColumnCode = "I1"

var columnCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// Valid reports whether c is a well-formed column code.
func (c ColumnCode) Valid() bool {
	return columnCodePattern.MatchString(string(c))
}

// Columns maps column codes to their rendered values.
type Columns map[ColumnCode]string

// UnmarshalJSON merges the API's list of single-key objects into one map.
// Keys must be valid column codes and values scalars.
func (c *Columns) UnmarshalJSON(data []byte) error {
	merged := Columns{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = merged
		return nil
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("columns: %w", err)
	}

	for _, entry := range entries {
		for key, raw := range entry {
			code := ColumnCode(key)
			if !code.Valid() {
				return fmt.Errorf("columns: invalid column code %q", key)
			}
			value, err := scalarString(raw)
			if err != nil {
				return fmt.Errorf("columns: %s: %w", key, err)
			}
			merged[code] = value
		}
	}

	*c = merged
	return nil
}

// MarshalJSON writes the list-of-objects wire form back out.
func (c Columns) MarshalJSON() ([]byte, error) {
	entries := make([]map[ColumnCode]string, 0, len(c))
	for code, value := range c {
		entries = append(entries, map[ColumnCode]string{code: value})
	}
	return json.Marshal(entries)
}

func scalarString(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("unsupported value %s", string(raw))
	}
}
