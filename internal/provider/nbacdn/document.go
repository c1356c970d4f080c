package nbacdn

import (
	"github.com/albapepper/scoracle-boxscores/internal/provider"
)

// Document is a decoded source response tagged with the family that served it.
type Document struct {
	Source provider.Source
	URL    string
	Body   map[string]interface{}
}

// extractMap safely extracts a nested object. Missing or mistyped keys yield
// an empty map so lookups on the result stay safe.
func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// extractObjects returns the object elements of a nested array, skipping
// anything that is not an object.
func extractObjects(m map[string]interface{}, key string) []map[string]interface{} {
	arr, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

// value returns the first of keys holding a non-empty scalar. Empty strings
// count as absent so "" in a primary field still falls through.
func value(m map[string]interface{}, keys ...string) provider.Value {
	for _, k := range keys {
		v := provider.ValueOf(m[k])
		if v.IsNull() {
			continue
		}
		if s, ok := v.Raw().(string); ok && s == "" {
			continue
		}
		return v
	}
	return provider.Null
}
