package i18n

// M holds placeholder replacement values for translation templates.
type M map[string]any

// Value is a resolved translation: either a single string or an ordered list
// of pluralization variants.
type Value struct {
	single string
	list   []string
	isList bool
}

func stringValue(s string) Value {
	return Value{single: s}
}

func listValue(items []string) Value {
	return Value{list: items, isList: true}
}

// IsList reports whether the value is a variant list rather than a single
// string.
func (v Value) IsList() bool {
	return v.isList
}

// String returns the single string form. For list values it degrades to the
// first variant, or "" when the list is empty.
func (v Value) String() string {
	if !v.isList {
		return v.single
	}
	if len(v.list) == 0 {
		return ""
	}
	return v.list[0]
}

// Strings returns the variant list, or nil for single-string values. The
// returned slice must not be mutated.
func (v Value) Strings() []string {
	if !v.isList {
		return nil
	}
	return v.list
}
