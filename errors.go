package i18n

import "errors"

var (
	ErrNilRepository      = errors.New("i18n: repository cannot be nil")
	ErrEmptyLocale        = errors.New("i18n: locale cannot be empty")
	ErrEmptyIdentifiers   = errors.New("i18n: placeholder identifiers cannot be empty")
	ErrNilPluralRule      = errors.New("i18n: plural rule cannot be nil")
	ErrInvalidPluralForms = errors.New("i18n: plural rule must declare at least one form")
	ErrInvalidFile        = errors.New("i18n: invalid translation file")
	ErrInvalidConfig      = errors.New("i18n: invalid configuration")
)
