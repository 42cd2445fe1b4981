// Package pages holds the storefront's templ components. Every page is a
// templ.Component built from smaller components; the layout receives the
// page body as its children.
package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// out keeps the first write error so a component body reads top to bottom.
type out struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(o *out)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{ctx: ctx, w: w}
		fn(o)
		return o.err
	})
}

// raw writes trusted markup.
func (o *out) raw(parts ...string) {
	for _, s := range parts {
		if o.err != nil {
			return
		}
		_, o.err = io.WriteString(o.w, s)
	}
}

// text writes escaped character data.
func (o *out) text(s string) {
	o.raw(templ.EscapeString(s))
}

func (o *out) int(n int) {
	o.raw(itoa(n))
}

func itoa(n int) string { return strconv.Itoa(n) }

func (o *out) textf(format string, args ...any) {
	o.text(fmt.Sprintf(format, args...))
}

// attr writes ` name="value"` with value escaped.
func (o *out) attr(name, value string) {
	o.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// url writes a URL attribute. Values with an unsafe scheme are replaced by
// templ's sanitized placeholder.
func (o *out) url(name, href string) {
	o.attr(name, string(templ.URL(href)))
}

// flag writes a boolean attribute when on.
func (o *out) flag(name string, on bool) {
	if on {
		o.raw(" ", name)
	}
}

func (o *out) class(classes ...any) {
	if v := templ.Classes(classes...).String(); v != "" {
		o.attr("class", v)
	}
}

func (o *out) render(c templ.Component) {
	if o.err != nil || c == nil {
		return
	}
	o.err = c.Render(o.ctx, o.w)
}

func storePath(countryCode, path string) string {
	return "/" + countryCode + path
}
