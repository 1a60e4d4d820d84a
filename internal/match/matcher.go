// Package match implements the metadata predicate used to filter NFT
// inventories.
package match

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"holdingsScope/internal/model"
)

// Matches reports whether record satisfies filter. A nil or empty filter
// matches anything, including a nil record. Top-level scalar fields compare
// with strict equality under case-insensitive field names. When the filter
// carries attributes, the record must carry at least as many; the length
// check is a precondition and runs before any trait content is compared.
// Trait names compare case-insensitively and trait values loosely, so a
// filter value "2" matches a record value 2.
func Matches(record, filter *model.MetadataRecord) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, name := range filter.FieldNames() {
		want, _ := filter.Get(name)
		got, ok := record.Get(name)
		if !ok || !scalarEqual(got, want) {
			return false
		}
	}

	if len(filter.Attributes) == 0 {
		return true
	}
	if record == nil || record.Attributes == nil {
		return false
	}
	if len(filter.Attributes) > len(record.Attributes) {
		return false
	}

	traits := make(map[string]any, len(record.Attributes))
	for _, attr := range record.Attributes {
		traits[strings.ToLower(attr.TraitType)] = attr.Value
	}
	for _, want := range filter.Attributes {
		got, ok := traits[strings.ToLower(want.TraitType)]
		if !ok || !looseEqual(got, want.Value) {
			return false
		}
	}

	return true
}

// scalarEqual is strict: no cross-type coercion.
func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// looseEqual compares trait values the way their scalar sources naturally
// coerce: values are equal when their canonical text forms agree.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return scalarText(a) == scalarText(b)
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
