package i18n

import "golang.org/x/text/language"

// NegotiateLocale picks the entry from available that best serves the
// candidate codes, in candidate preference order. Matching understands
// regional variants and script fallbacks, so candidates ["de-ch"] negotiate
// to an available "de". When nothing matches, or no candidate parses, the
// first available locale wins. Returns "" only when available is empty.
func NegotiateLocale(available []string, candidates ...string) string {
	if len(available) == 0 {
		return ""
	}

	supported := make([]language.Tag, len(available))
	for i, code := range available {
		supported[i] = language.Raw.Make(code)
	}
	matcher := language.NewMatcher(supported)

	desired := make([]language.Tag, 0, len(candidates))
	for _, code := range candidates {
		if tag, err := language.Parse(code); err == nil {
			desired = append(desired, tag)
		}
	}
	if len(desired) == 0 {
		return available[0]
	}

	// Match may return a synthesized tag, so index back into available
	// rather than trusting the returned tag's string form.
	_, idx, _ := matcher.Match(desired...)
	return available[idx]
}
