// Package static embeds the stylesheet and browser scripts.
package static

import "embed"

//go:embed css js
var FS embed.FS
