package tags

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"mediakit/internal/services"
)

// Field is one metadata assignment.
type Field struct {
	Key   string
	Value string
}

// Fields keeps assignments in the order the user supplied them.
type Fields []Field

// Keys returns the field names in order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}

const (
	invalidJSONMessage = `Invalid JSON format. Please provide valid JSON (e.g., {"title": "New Title"}).`
	notObjectMessage   = "Metadata must be a valid JSON object."
	emptyObjectMessage = "Metadata must contain at least one field."
)

// ParseFields decodes a JSON object into ordered string fields. Scalars are
// rendered the way a user would type them: numbers verbatim, booleans as
// True/False, null as None. Nested arrays and objects are re-encoded as
// compact JSON. A repeated key keeps its first position and its last value.
func ParseFields(raw string) (Fields, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		if !json.Valid([]byte(strings.TrimSpace(raw))) {
			return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
		}
		return nil, services.Reject(services.ErrArgumentInvalid, notObjectMessage)
	}

	var fields Fields
	positions := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
		}
		text, err := renderValue(value)
		if err != nil {
			return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
		}
		if pos, ok := positions[key]; ok {
			fields[pos].Value = text
			continue
		}
		positions[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: text})
	}
	if _, err := dec.Token(); err != nil {
		return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, services.Reject(services.ErrArgumentInvalid, invalidJSONMessage)
	}
	if len(fields) == 0 {
		return nil, services.Reject(services.ErrArgumentInvalid, emptyObjectMessage)
	}
	return fields, nil
}

func renderValue(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", errors.New("empty value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't':
		return "True", nil
	case 'f':
		return "False", nil
	case 'n':
		return "None", nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return string(trimmed), nil
	}
}
