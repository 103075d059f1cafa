package i18n

// PluralRule maps a count to a zero-based pluralization variant index.
// Rules must be total: every integer count, including zero and negative
// numbers, yields a valid index.
type PluralRule func(count int) int

// pluralSpec pairs a rule with the number of variant forms it selects from.
type pluralSpec struct {
	index PluralRule
	forms int
}

// Family rules in their index form, derived from the CLDR plural rules.
// Negative counts follow truncated-modulo semantics, so every formula below
// is defined for them.
var (
	// oneFormRule covers languages without grammatical plural (ja, zh, ko, ...).
	oneFormRule PluralRule = func(_ int) int {
		return 0
	}

	// twoFormNotOneRule is the default rule: singular only for exactly one.
	twoFormNotOneRule PluralRule = func(n int) int {
		if n == 1 {
			return 0
		}
		return 1
	}

	// twoFormGreaterOneRule serves languages where zero shares the singular
	// (fr, pt-BR, tr, ...).
	twoFormGreaterOneRule PluralRule = func(n int) int {
		if n > 1 {
			return 1
		}
		return 0
	}

	icelandicRule PluralRule = func(n int) int {
		if n%10 != 1 || n%100 == 11 {
			return 1
		}
		return 0
	}

	javaneseRule PluralRule = func(n int) int {
		if n != 0 {
			return 1
		}
		return 0
	}

	macedonianRule PluralRule = func(n int) int {
		if n == 1 || n%10 == 1 {
			return 0
		}
		return 1
	}

	latvianRule PluralRule = func(n int) int {
		switch {
		case n%10 == 1 && n%100 != 11:
			return 0
		case n != 0:
			return 1
		default:
			return 2
		}
	}

	lithuanianRule PluralRule = func(n int) int {
		switch {
		case n%10 == 1 && n%100 != 11:
			return 0
		case n%10 >= 2 && (n%100 < 10 || n%100 >= 20):
			return 1
		default:
			return 2
		}
	}

	// slavicRule covers be, bs, hr, ru, sr, uk.
	slavicRule PluralRule = func(n int) int {
		switch {
		case n%10 == 1 && n%100 != 11:
			return 0
		case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
			return 1
		default:
			return 2
		}
	}

	mandinkaRule PluralRule = func(n int) int {
		switch {
		case n == 0:
			return 0
		case n == 1:
			return 1
		default:
			return 2
		}
	}

	romanianRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 0 || (n%100 > 0 && n%100 < 20):
			return 1
		default:
			return 2
		}
	}

	polishRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
			return 1
		default:
			return 2
		}
	}

	czechSlovakRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n >= 2 && n <= 4:
			return 1
		default:
			return 2
		}
	}

	kashubianRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
			return 1
		default:
			return 2
		}
	}

	slovenianRule PluralRule = func(n int) int {
		switch {
		case n%100 == 1:
			return 0
		case n%100 == 2:
			return 1
		case n%100 == 3 || n%100 == 4:
			return 2
		default:
			return 3
		}
	}

	malteseRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 0 || (n%100 > 1 && n%100 < 11):
			return 1
		case n%100 > 10 && n%100 < 20:
			return 2
		default:
			return 3
		}
	}

	scottishGaelicRule PluralRule = func(n int) int {
		switch {
		case n == 1 || n == 11:
			return 0
		case n == 2 || n == 12:
			return 1
		case n > 2 && n < 20:
			return 2
		default:
			return 3
		}
	}

	welshRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 2:
			return 1
		case n != 8 && n != 11:
			return 2
		default:
			return 3
		}
	}

	cornishRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 2:
			return 1
		case n == 3:
			return 2
		default:
			return 3
		}
	}

	irishRule PluralRule = func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 2:
			return 1
		case n > 2 && n < 7:
			return 2
		case n > 6 && n < 11:
			return 3
		default:
			return 4
		}
	}

	arabicRule PluralRule = func(n int) int {
		switch {
		case n == 0:
			return 0
		case n == 1:
			return 1
		case n == 2:
			return 2
		case n%100 >= 3 && n%100 <= 10:
			return 3
		case n%100 >= 11:
			return 4
		default:
			return 5
		}
	}
)

// defaultPluralSpec applies to every language code without an explicit entry.
var defaultPluralSpec = pluralSpec{index: twoFormNotOneRule, forms: 2}

// pluralSpecFor dispatches on the exact language code. Regional variants not
// listed here intentionally fall through to the default rule; the resolution
// engine passes the code it actually rendered from.
func pluralSpecFor(languageCode string) pluralSpec {
	switch languageCode {
	case "ay", "bo", "cgg", "dz", "fa", "id", "ja", "jbo", "ka", "kk", "km",
		"ko", "ky", "lo", "ms", "my", "sah", "su", "th", "tt", "ug", "vi", "wo", "zh":
		return pluralSpec{index: oneFormRule, forms: 1}
	case "is":
		return pluralSpec{index: icelandicRule, forms: 2}
	case "jv":
		return pluralSpec{index: javaneseRule, forms: 2}
	case "mk":
		return pluralSpec{index: macedonianRule, forms: 2}
	case "ach", "ak", "am", "arn", "br", "fil", "fr", "gun", "ln", "mfe", "mg",
		"mi", "oc", "pt-BR", "tg", "ti", "tr", "uz", "wa":
		return pluralSpec{index: twoFormGreaterOneRule, forms: 2}
	case "lv":
		return pluralSpec{index: latvianRule, forms: 3}
	case "lt":
		return pluralSpec{index: lithuanianRule, forms: 3}
	case "be", "bs", "hr", "ru", "sr", "uk":
		return pluralSpec{index: slavicRule, forms: 3}
	case "mnk":
		return pluralSpec{index: mandinkaRule, forms: 3}
	case "ro":
		return pluralSpec{index: romanianRule, forms: 3}
	case "pl":
		return pluralSpec{index: polishRule, forms: 3}
	case "cs", "sk":
		return pluralSpec{index: czechSlovakRule, forms: 3}
	case "csb":
		return pluralSpec{index: kashubianRule, forms: 3}
	case "sl":
		return pluralSpec{index: slovenianRule, forms: 4}
	case "mt":
		return pluralSpec{index: malteseRule, forms: 4}
	case "gd":
		return pluralSpec{index: scottishGaelicRule, forms: 4}
	case "cy":
		return pluralSpec{index: welshRule, forms: 4}
	case "kw":
		return pluralSpec{index: cornishRule, forms: 4}
	case "ga":
		return pluralSpec{index: irishRule, forms: 5}
	case "ar":
		return pluralSpec{index: arabicRule, forms: 6}
	default:
		return defaultPluralSpec
	}
}

// PluralIndex returns the zero-based pluralization variant index for the
// given language code and count. Unknown codes use the default two-form rule:
// 0 for a count of exactly one, 1 otherwise.
func PluralIndex(languageCode string, count int) int {
	return pluralSpecFor(languageCode).index(count)
}

// PluralForms returns how many pluralization variants the language's rule
// selects from. Useful when validating that a catalog provides enough
// variants for its locale.
func PluralForms(languageCode string) int {
	return pluralSpecFor(languageCode).forms
}
