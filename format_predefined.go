package i18n

// FormatEnUS returns display conventions for US English (en-US).
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns display conventions for British English (en-GB).
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("£"),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatDeDE returns display conventions for German (de-DE).
func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrencySymbol("€"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatFrFR returns display conventions for French (fr-FR).
func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("€"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatEsES returns display conventions for Spanish (es-ES).
func FormatEsES() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrencySymbol("€"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatPtBR returns display conventions for Brazilian Portuguese (pt-BR).
func FormatPtBR() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrencySymbol("R$"),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatPlPL returns display conventions for Polish (pl-PL).
func FormatPlPL() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("zł"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatRuRU returns display conventions for Russian (ru-RU).
func FormatRuRU() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("₽"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatUkUA returns display conventions for Ukrainian (uk-UA).
func FormatUkUA() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("₴"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatJaJP returns display conventions for Japanese (ja-JP).
func FormatJaJP() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("¥"),
		WithDateFormat("2006/01/02"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("2006/01/02 15:04"),
	)
}

// FormatZhCN returns display conventions for Simplified Chinese (zh-CN).
func FormatZhCN() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("¥"),
		WithDateFormat("2006-01-02"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("2006-01-02 15:04"),
	)
}

// FormatKoKR returns display conventions for Korean (ko-KR).
func FormatKoKR() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("₩"),
		WithDateFormat("2006.01.02"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("2006.01.02 15:04"),
	)
}

// FormatArSA returns display conventions for Arabic (ar-SA).
func FormatArSA() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("SAR"),
		WithCurrencyAfterAmount(),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("3:04 PM"),
		WithDateTimeFormat("02/01/2006 3:04 PM"),
	)
}

var predefinedFormats = map[string]func() *LocaleFormat{
	"en-US": FormatEnUS,
	"en-GB": FormatEnGB,
	"de-DE": FormatDeDE,
	"fr-FR": FormatFrFR,
	"es-ES": FormatEsES,
	"pt-BR": FormatPtBR,
	"pl-PL": FormatPlPL,
	"ru-RU": FormatRuRU,
	"uk-UA": FormatUkUA,
	"ja-JP": FormatJaJP,
	"zh-CN": FormatZhCN,
	"ko-KR": FormatKoKR,
	"ar-SA": FormatArSA,
	"en":    FormatEnUS,
	"de":    FormatDeDE,
	"fr":    FormatFrFR,
	"es":    FormatEsES,
	"pl":    FormatPlPL,
	"ru":    FormatRuRU,
	"uk":    FormatUkUA,
	"ja":    FormatJaJP,
	"zh":    FormatZhCN,
	"ko":    FormatKoKR,
	"ar":    FormatArSA,
}

// FormatFor returns the predefined format for a locale, falling back to the
// language part for regional codes and to en-US conventions when nothing
// matches. The result is freshly built and safe to customize further.
func FormatFor(locale string) *LocaleFormat {
	if build, ok := predefinedFormats[locale]; ok {
		return build()
	}
	if parent, ok := parentLocale(locale); ok {
		if build, found := predefinedFormats[parent]; found {
			return build()
		}
	}
	return FormatEnUS()
}
