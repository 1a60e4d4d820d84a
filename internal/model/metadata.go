package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Attribute is one named trait inside NFT metadata.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// MetadataRecord is a semi-structured metadata object: scalar fields kept in
// insertion order plus an optional ordered trait list. Field lookup is
// case-insensitive; the stored key keeps its original spelling. A record can
// describe an actual NFT's metadata or a partial filter.
type MetadataRecord struct {
	keys   []string
	values map[string]any

	Attributes []Attribute
}

// NewMetadataRecord returns an empty record.
func NewMetadataRecord() *MetadataRecord {
	return &MetadataRecord{values: make(map[string]any)}
}

// Set stores a scalar field. Setting an existing field under any casing
// replaces its value but keeps its original position and spelling.
func (r *MetadataRecord) Set(name string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	key := strings.ToLower(name)
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[key] = value
}

// Get looks up a scalar field by case-insensitive name. Safe on a nil record.
func (r *MetadataRecord) Get(name string) (any, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	value, ok := r.values[strings.ToLower(name)]
	return value, ok
}

// FieldNames returns the scalar field names in insertion order.
func (r *MetadataRecord) FieldNames() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// IsEmpty reports whether the record constrains nothing: no scalar fields
// and no attributes. A nil record is empty.
func (r *MetadataRecord) IsEmpty() bool {
	return r == nil || (len(r.keys) == 0 && len(r.Attributes) == 0)
}

// UnmarshalJSON decodes a JSON object preserving field order. The
// "attributes" key, under any casing, binds the trait list instead of a
// scalar field.
func (r *MetadataRecord) UnmarshalJSON(data []byte) error {
	*r = MetadataRecord{values: make(map[string]any)}

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("metadata: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metadata: non-string key %v", keyTok)
		}

		if strings.EqualFold(key, "attributes") {
			var attrs []Attribute
			if err := dec.Decode(&attrs); err != nil {
				return fmt.Errorf("metadata attributes: %w", err)
			}
			r.Attributes = attrs
			continue
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("metadata field %q: %w", key, err)
		}
		r.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the record as a JSON object with fields in insertion
// order, attributes last.
func (r *MetadataRecord) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		valueData, err := json.Marshal(r.values[strings.ToLower(name)])
		if err != nil {
			return nil, fmt.Errorf("metadata field %q: %w", name, err)
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		buf.Write(valueData)
	}

	if r.Attributes != nil {
		if len(r.keys) > 0 {
			buf.WriteByte(',')
		}
		attrData, err := json.Marshal(r.Attributes)
		if err != nil {
			return nil, fmt.Errorf("metadata attributes: %w", err)
		}
		buf.WriteString(`"attributes":`)
		buf.Write(attrData)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
