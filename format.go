package i18n

import (
	"strconv"
	"strings"
	"time"
)

// LocaleFormat holds display conventions for numbers, money, percentages, and
// timestamps. It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	decimalSep     string
	thousandSep    string
	currency       string
	currencyAfter  bool
	currencyGap    bool
	percentSign    string
	dateLayout     string
	timeLayout     string
	dateTimeLayout string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a LocaleFormat. Without options it follows US
// English conventions.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSep:     ".",
		thousandSep:    ",",
		currency:       "$",
		percentSign:    "%",
		dateLayout:     "01/02/2006",
		timeLayout:     "3:04 PM",
		dateTimeLayout: "01/02/2006 3:04 PM",
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDecimalSeparator sets the decimal separator.
func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.decimalSep = sep
	}
}

// WithThousandSeparator sets the digit grouping separator.
func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.thousandSep = sep
	}
}

// WithCurrencySymbol sets the currency symbol.
func WithCurrencySymbol(symbol string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currency = symbol
	}
}

// WithCurrencyAfterAmount places the currency symbol after the amount,
// separated by a space, as in "1 234,50 €".
func WithCurrencyAfterAmount() LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencyAfter = true
		lf.currencyGap = true
	}
}

// WithCurrencyGap inserts a space between a leading currency symbol and the
// amount, as in "CHF 1'234.50".
func WithCurrencyGap() LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencyGap = true
	}
}

// WithPercentSymbol sets the percent sign.
func WithPercentSymbol(symbol string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.percentSign = symbol
	}
}

// WithDateFormat sets the date layout (Go time layout syntax).
func WithDateFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateLayout = layout
	}
}

// WithTimeFormat sets the time-of-day layout (Go time layout syntax).
func WithTimeFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeLayout = layout
	}
}

// WithDateTimeFormat sets the timestamp layout (Go time layout syntax).
func WithDateTimeFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateTimeLayout = layout
	}
}

// FormatNumber formats a number with grouping and up to two fraction digits,
// dropping trailing zeros: 1234.5 becomes "1,234.5" under en-US conventions.
func (lf *LocaleFormat) FormatNumber(n float64) string {
	return lf.formatDecimal(n, 2, true)
}

// FormatCurrency formats a monetary amount with exactly two fraction digits
// and the locale's currency symbol placement.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	num := lf.formatDecimal(amount, 2, false)

	if lf.currencyAfter {
		return sign + num + " " + lf.currency
	}
	if lf.currencyGap {
		return sign + lf.currency + " " + num
	}
	return sign + lf.currency + num
}

// FormatPercent formats a ratio as a percentage with up to one fraction
// digit: 0.125 becomes "12.5%" under en-US conventions.
func (lf *LocaleFormat) FormatPercent(ratio float64) string {
	return lf.formatDecimal(ratio*100, 1, true) + lf.percentSign
}

// FormatDate formats the date part of t.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateLayout)
}

// FormatTime formats the time-of-day part of t.
func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(lf.timeLayout)
}

// FormatDateTime formats t as a full timestamp.
func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(lf.dateTimeLayout)
}

// formatDecimal rounds n to the given number of fraction digits, groups the
// integer part, and joins the parts with the locale separators. When trim is
// set, trailing fraction zeros and an empty fraction are dropped.
func (lf *LocaleFormat) formatDecimal(n float64, digits int, trim bool) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	fixed := strconv.FormatFloat(n, 'f', digits, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	if trim {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	out := sign + lf.groupDigits(intPart)
	if fracPart != "" {
		out += lf.decimalSep + fracPart
	}
	return out
}

// groupDigits inserts the thousand separator into a plain digit string.
func (lf *LocaleFormat) groupDigits(digits string) string {
	if len(digits) <= 3 || lf.thousandSep == "" {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3*len(lf.thousandSep))

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(lf.thousandSep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
