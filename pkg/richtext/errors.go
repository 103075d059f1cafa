package richtext

import "errors"

// ErrRenderFailed is returned when markdown cannot be converted to HTML.
var ErrRenderFailed = errors.New("richtext: render failed")
