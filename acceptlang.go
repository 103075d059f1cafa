package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps header parsing to bound work on oversized input.
const maxAcceptLanguageLength = 4096

type acceptedLanguage struct {
	code    string
	quality float64
}

// ParseAcceptLanguage parses an Accept-Language header into lowercase language
// codes ordered by descending quality. Wildcards and entries with q=0 are
// dropped; a missing or malformed quality counts as 1. Ties keep header order.
//
// Example: "en-US,en;q=0.9,pl;q=0.8" yields ["en-us", "en", "pl"].
func ParseAcceptLanguage(header string) []string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var accepted []acceptedLanguage

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		code, params, hasParams := strings.Cut(part, ";")
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || code == "*" {
			continue
		}

		quality := 1.0
		if hasParams {
			params = strings.TrimSpace(params)
			if qval, ok := strings.CutPrefix(params, "q="); ok {
				if q, err := strconv.ParseFloat(qval, 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}
		if quality == 0 {
			continue
		}

		accepted = append(accepted, acceptedLanguage{code: code, quality: quality})
	}

	slices.SortStableFunc(accepted, func(a, b acceptedLanguage) int {
		return cmp.Compare(b.quality, a.quality)
	})

	codes := make([]string, len(accepted))
	for i, lang := range accepted {
		codes[i] = lang.code
	}
	return codes
}
