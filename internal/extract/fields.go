package extract

import (
	"sort"
	"strings"

	"github.com/prescottcassy/insurance-assistant/constants"
)

// FieldMap maps normalized field keys (lowercase, underscore-separated) to
// string values scraped from card OCR text. Built fresh per extraction,
// never persisted.
type FieldMap map[string]string

// SetIfAbsent stores value under key only when the key is not already set.
// Specific-pass results are never clobbered by the generic harvest passes.
func (f FieldMap) SetIfAbsent(key, value string) bool {
	if _, ok := f[key]; ok {
		return false
	}
	f[key] = value
	return true
}

// SortedKeys returns the keys in lexical order for deterministic output.
func (f FieldMap) SortedKeys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clean returns the presentation view of a field map: the raw-text debug key
// is removed and empty or null-like values are dropped. The receiver is not
// modified.
func Clean(f FieldMap) FieldMap {
	out := make(FieldMap, len(f))
	for k, v := range f {
		if k == constants.RawTextKey {
			continue
		}
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
			continue
		}
		out[k] = s
	}
	return out
}

// keyify derives a map key from a harvested label: lowercase, spaces and
// hyphens become underscores.
func keyify(label string) string {
	k := strings.ToLower(strings.TrimSpace(label))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "-", "_")
	return k
}
