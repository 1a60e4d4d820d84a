package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMetadataRecordUnmarshalPreservesOrder(t *testing.T) {
	payload := []byte(`{
		"name": "Punk #1",
		"image": "ipfs://abc",
		"attributes": [
			{"trait_type": "Color", "value": "Red"},
			{"trait_type": "Level", "value": 2}
		],
		"external_url": "https://example.com/1"
	}`)

	var record MetadataRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if want := []string{"name", "image", "external_url"}; !reflect.DeepEqual(record.FieldNames(), want) {
		t.Fatalf("field order mismatch: %v != %v", record.FieldNames(), want)
	}

	if len(record.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(record.Attributes))
	}
	if record.Attributes[0].TraitType != "Color" || record.Attributes[0].Value != "Red" {
		t.Fatalf("attribute mismatch: %+v", record.Attributes[0])
	}
	if record.Attributes[1].Value != float64(2) {
		t.Fatalf("numeric attribute should decode as float64, got %T", record.Attributes[1].Value)
	}
}

func TestMetadataRecordCaseInsensitiveLookup(t *testing.T) {
	record := NewMetadataRecord()
	record.Set("Name", "Punk #1")

	for _, name := range []string{"Name", "name", "NAME"} {
		value, ok := record.Get(name)
		if !ok || value != "Punk #1" {
			t.Fatalf("lookup %q failed: %v %v", name, value, ok)
		}
	}

	record.Set("NAME", "Punk #2")
	if want := []string{"Name"}; !reflect.DeepEqual(record.FieldNames(), want) {
		t.Fatalf("re-set under other casing should keep the original key: %v", record.FieldNames())
	}
	if value, _ := record.Get("name"); value != "Punk #2" {
		t.Fatalf("re-set should replace the value, got %v", value)
	}
}

func TestMetadataRecordAttributesKeyAnyCase(t *testing.T) {
	var record MetadataRecord
	if err := json.Unmarshal([]byte(`{"Attributes":[{"trait_type":"Color","value":"Red"}]}`), &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(record.Attributes) != 1 {
		t.Fatalf("capitalized attributes key should bind the trait list")
	}
	if len(record.FieldNames()) != 0 {
		t.Fatalf("attributes must not appear as a scalar field: %v", record.FieldNames())
	}
}

func TestMetadataRecordMarshalRoundTrip(t *testing.T) {
	record := NewMetadataRecord()
	record.Set("name", "Punk #1")
	record.Set("rank", float64(3))
	record.Attributes = []Attribute{{TraitType: "Color", Value: "Red"}}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded MetadataRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(decoded.FieldNames(), record.FieldNames()) {
		t.Fatalf("field order lost in round trip: %v", decoded.FieldNames())
	}
	if value, _ := decoded.Get("rank"); value != float64(3) {
		t.Fatalf("rank mismatch: %v", value)
	}
	if !reflect.DeepEqual(decoded.Attributes, record.Attributes) {
		t.Fatalf("attributes mismatch: %+v", decoded.Attributes)
	}
}

func TestMetadataRecordNullAndEmpty(t *testing.T) {
	var record MetadataRecord
	if err := json.Unmarshal([]byte(`null`), &record); err != nil {
		t.Fatalf("null should decode to an empty record: %v", err)
	}
	if !record.IsEmpty() {
		t.Fatalf("null record should be empty")
	}

	var nilRecord *MetadataRecord
	if !nilRecord.IsEmpty() {
		t.Fatalf("nil record should be empty")
	}
	if _, ok := nilRecord.Get("name"); ok {
		t.Fatalf("nil record lookup should miss")
	}
}
