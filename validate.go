package i18n

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Issue is a catalog inconsistency found by Lint. Locale is empty for issues
// spanning the whole catalog.
type Issue struct {
	Locale string
	Key    string
	Detail string
}

func (iss Issue) String() string {
	if iss.Locale == "" {
		return iss.Key + ": " + iss.Detail
	}
	return iss.Locale + "/" + iss.Key + ": " + iss.Detail
}

// pluralConvention classifies how a value encodes its plural variants.
type pluralConvention int

const (
	conventionPlain pluralConvention = iota
	conventionSeparator
	conventionSequence
)

// Lint checks the repository for catalog problems without rendering anything:
// keys mixing the ":::" separator and sequence conventions across locales,
// plural templates carrying fewer variants than the locale selects from, and
// placeholder sets diverging from the fallback locale. Lint is advisory;
// resolution never consults it.
func (i *I18n) Lint() []Issue {
	table := i.repo.Table()
	fallback := i.repo.FallbackLocale()

	var issues []Issue

	// Which locales use which plural convention, per key.
	sequenceIn := make(map[string][]string)
	separatorIn := make(map[string][]string)

	for _, locale := range slices.Sorted(maps.Keys(table)) {
		entry := table[locale]
		for _, key := range slices.Sorted(maps.Keys(entry)) {
			value := entry[key]
			convention, variants := variantsOf(value)

			switch convention {
			case conventionSequence:
				sequenceIn[key] = append(sequenceIn[key], locale)
			case conventionSeparator:
				separatorIn[key] = append(separatorIn[key], locale)
			}

			if len(variants) > 1 {
				if forms := i.pluralForms(locale); len(variants) < forms {
					issues = append(issues, Issue{
						Locale: locale,
						Key:    key,
						Detail: fmt.Sprintf("%d plural variants, locale selects from %d forms", len(variants), forms),
					})
				}
			}

			if locale != fallback {
				if ref, ok := table[fallback][key]; ok {
					if detail := placeholderDiff(i.placeholdersOf(value), i.placeholdersOf(ref)); detail != "" {
						issues = append(issues, Issue{Locale: locale, Key: key, Detail: detail})
					}
				}
			}
		}
	}

	for key, seqLocales := range sequenceIn {
		if sepLocales, ok := separatorIn[key]; ok {
			issues = append(issues, Issue{
				Key: key,
				Detail: fmt.Sprintf("mixed plural conventions: sequence in %s, separator in %s",
					strings.Join(seqLocales, ","), strings.Join(sepLocales, ",")),
			})
		}
	}

	slices.SortFunc(issues, func(a, b Issue) int {
		if c := cmp.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Locale, b.Locale); c != 0 {
			return c
		}
		return cmp.Compare(a.Detail, b.Detail)
	})
	return issues
}

// variantsOf splits a raw translation value into its plural variants and
// reports which convention encodes them.
func variantsOf(value any) (pluralConvention, []string) {
	switch v := value.(type) {
	case []string:
		return conventionSequence, v
	case string:
		if strings.Contains(v, pluralSeparator) {
			return conventionSeparator, strings.Split(v, pluralSeparator)
		}
		return conventionPlain, []string{v}
	default:
		return conventionPlain, []string{fmt.Sprintf("%v", v)}
	}
}

// placeholdersOf collects the sorted set of placeholder names used across all
// variants of a value.
func (i *I18n) placeholdersOf(value any) []string {
	_, variants := variantsOf(value)
	set := make(map[string]struct{})
	for _, variant := range variants {
		for _, token := range i.placeholderRE.FindAllString(variant, -1) {
			name := strings.TrimSuffix(strings.TrimPrefix(token, i.identStart), i.identEnd)
			set[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// placeholderDiff describes how a locale's placeholder set deviates from the
// fallback locale's. Empty when the sets match.
func placeholderDiff(got, want []string) string {
	if slices.Equal(got, want) {
		return ""
	}

	var missing, extra []string
	for _, name := range want {
		if !slices.Contains(got, name) {
			missing = append(missing, name)
		}
	}
	for _, name := range got {
		if !slices.Contains(want, name) {
			extra = append(extra, name)
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ","))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ","))
	}
	return "placeholders differ from fallback locale: " + strings.Join(parts, "; ")
}
