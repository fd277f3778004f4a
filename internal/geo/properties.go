package geo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Properties is a feature property mapping that preserves the key order of
// the source document. encoding/json decodes objects into Go maps with
// randomized iteration order, which would scramble table columns between
// runs and break export fidelity, so the order is tracked explicitly.
//
// The zero value represents missing or null properties.
type Properties struct {
	keys   []string
	values map[string]interface{}
}

// Set stores a value, appending the key on first use.
func (p *Properties) Set(key string, value interface{}) {
	if p.values == nil {
		p.values = make(map[string]interface{})
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether the key is present.
func (p Properties) Get(key string) (interface{}, bool) {
	value, ok := p.values[key]
	return value, ok
}

// Keys returns the property names in source-document order.
func (p Properties) Keys() []string {
	return p.keys
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return len(p.keys)
}

// IsNull reports whether the properties were missing or null in the source,
// as opposed to an empty object.
func (p Properties) IsNull() bool {
	return p.values == nil
}

// UnmarshalJSON decodes a JSON object while recording its key order.
// Numbers are kept as json.Number so their source literal survives a
// round-trip. A JSON null yields the zero value.
func (p *Properties) UnmarshalJSON(data []byte) error {
	p.keys = nil
	p.values = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	p.values = make(map[string]interface{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: unexpected key token %v", tok)
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		p.Set(key, value)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON encodes the properties as a JSON object in key order.
func (p Properties) MarshalJSON() ([]byte, error) {
	if p.values == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
