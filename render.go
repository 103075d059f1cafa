package i18n

import (
	"fmt"
	"log/slog"
	"strings"
)

// pluralSeparator splits a single translation string into its pluralization
// variants, e.g. "one apple:::many apples".
const pluralSeparator = ":::"

// substitute replaces configured placeholders in text with replacement
// values. Placeholders without a replacement stay verbatim; when warn is set
// the miss is reported so stale templates show up in logs.
func (i *I18n) substitute(text string, replacements M, warn bool) string {
	if !strings.Contains(text, i.identStart) {
		return text
	}

	return i.placeholderRE.ReplaceAllStringFunc(text, func(match string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(match, i.identStart), i.identEnd)
		if value, ok := replacements[key]; ok {
			return fmt.Sprintf("%v", value)
		}
		if warn {
			i.warn("placeholder has no replacement",
				slog.String("placeholder", key),
				slog.String("text", text),
			)
		}
		return match
	})
}

// render applies placeholder substitution and, when a count is supplied,
// selects the pluralization variant for the locale. The locale argument is
// only used for the plural index; lookups have already happened.
func (i *I18n) render(locale string, raw any, replacements M, count *int) Value {
	candidate := i.resolvePlaceholders(raw, replacements)

	if count == nil {
		return candidate
	}

	var variants []string
	if candidate.IsList() {
		variants = candidate.Strings()
		if len(variants) == 0 {
			i.warn("translation has no pluralization variants", slog.String("locale", locale))
			return stringValue("")
		}
	} else {
		variants = strings.Split(candidate.String(), pluralSeparator)
	}

	idx := i.pluralIndex(locale, *count)
	if idx < 0 || idx >= len(variants) {
		i.warn("translation is missing a pluralization variant",
			slog.String("locale", locale),
			slog.Int("count", *count),
			slog.Int("variant", idx),
			slog.Int("available", len(variants)),
		)
		return stringValue(strings.TrimSpace(variants[0]))
	}

	return stringValue(strings.TrimSpace(variants[idx]))
}

// resolvePlaceholders maps substitution over the raw value. Sequence elements
// are substituted without per-element diagnostics so that only the top-level
// return path reports unresolved placeholders.
func (i *I18n) resolvePlaceholders(raw any, replacements M) Value {
	switch v := raw.(type) {
	case string:
		return stringValue(i.substitute(v, replacements, true))
	case []string:
		items := make([]string, len(v))
		for n, item := range v {
			items[n] = i.substitute(item, replacements, false)
		}
		return listValue(items)
	default:
		// Flattened tables only hold strings and string sequences; anything
		// else passes through stringified.
		return stringValue(fmt.Sprintf("%v", v))
	}
}

// pluralIndex resolves the variant index, preferring per-instance rule
// overrides over the built-in table.
func (i *I18n) pluralIndex(languageCode string, count int) int {
	if spec, ok := i.pluralRules[languageCode]; ok {
		return spec.index(count)
	}
	return PluralIndex(languageCode, count)
}

// pluralForms mirrors pluralIndex for the declared form count.
func (i *I18n) pluralForms(languageCode string) int {
	if spec, ok := i.pluralRules[languageCode]; ok {
		return spec.forms
	}
	return PluralForms(languageCode)
}
