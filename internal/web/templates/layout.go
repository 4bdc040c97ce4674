// Package templates renders the HTML pages of the web UI as templ components.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`

const pageStyle = `</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 60rem; color: #1f2937; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border-bottom: 1px solid #e5e7eb; padding: .4rem .6rem; text-align: left; }
th { background: #f9fafb; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.alert { border: 1px solid #fca5a5; background: #fef2f2; padding: 1rem; border-radius: .4rem; }
.alert .code { color: #6b7280; font-size: .85rem; }
.meta { color: #6b7280; font-size: .85rem; }
.highlight { font-weight: 600; }
</style>
</head>
<body>
`

const pageFoot = `
</body>
</html>
`

// Page wraps body in the shared HTML shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead+templ.EscapeString(title)+pageStyle); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

// ErrorAlert renders a user-facing error with its suggested action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="alert" role="alert"><strong>`+
			templ.EscapeString(message)+`</strong>`+
			optional(`<p>`, action, `</p>`)+
			optional(`<p class="code">Code: `, code, `</p>`)+
			`</div>`)
		return err
	})
}

// optional wraps an escaped value in open/close, or returns "" for an empty value.
func optional(open, value, closeTag string) string {
	if value == "" {
		return ""
	}
	return open + templ.EscapeString(value) + closeTag
}
