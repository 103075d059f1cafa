package i18n

import (
	"fmt"
	"maps"
)

// Flatten normalizes a nested translation tree into a single-depth map with
// dot-joined keys. Sequences are kept as atomic []string leaves and are never
// recursed into; scalar leaves are coerced to their string form. A later key
// silently overwrites an earlier one written to the same dotted path.
//
// The resulting values are only string or []string.
func Flatten(tree map[string]any) map[string]any {
	return flattenTree(tree, "", func(string, ...any) {})
}

// flattenTree is Flatten with a diagnostic sink, used by repositories that
// carry a logger.
func flattenTree(tree map[string]any, prefix string, warnf func(format string, args ...any)) map[string]any {
	result := make(map[string]any, len(tree))

	for key, value := range tree {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case []string:
			result[fullKey] = append([]string(nil), v...)
		case []any:
			result[fullKey] = coerceSequence(fullKey, v, warnf)
		case map[string]any:
			maps.Copy(result, flattenTree(v, fullKey, warnf))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

// coerceSequence copies a sequence leaf, stringifying non-string elements.
// Sequences hold pluralization variants; elements of any other type are
// tolerated but reported.
func coerceSequence(key string, seq []any, warnf func(format string, args ...any)) []string {
	items := make([]string, len(seq))
	for i, item := range seq {
		s, ok := item.(string)
		if !ok {
			warnf("non-string element in sequence %q at index %d", key, i)
			s = fmt.Sprintf("%v", item)
		}
		items[i] = s
	}
	return items
}
