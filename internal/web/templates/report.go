package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/housing/internal/core"
	"github.com/a-h/templ"
)

// Report renders the category counts, the most space-constrained house and
// the classified house list.
func Report(r *core.Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<h1>Housing report</h1>`)
		b.WriteString(`<p class="meta">Source `)
		b.WriteString(templ.EscapeString(r.Source))
		b.WriteString(` &middot; run `)
		b.WriteString(templ.EscapeString(r.RunID))
		b.WriteString(` &middot; `)
		b.WriteString(strconv.Itoa(len(r.Houses)))
		b.WriteString(` houses</p>`)

		b.WriteString(`<h2>Houses by height</h2><table><thead><tr><th>Category</th><th>Count</th></tr></thead><tbody>`)
		for _, cc := range r.OrderedCounts() {
			b.WriteString(`<tr><td>`)
			b.WriteString(templ.EscapeString(cc.Category.String()))
			b.WriteString(`</td><td class="num">`)
			b.WriteString(strconv.Itoa(cc.Count))
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<h2>Smallest area per resident</h2><p><span class="highlight">`)
		b.WriteString(templ.EscapeString(r.MinArea.Address))
		b.WriteString(`</span> &middot; `)
		b.WriteString(formatFloat(r.MinArea.Ratio))
		b.WriteString(` m&sup2; per resident</p>`)

		b.WriteString(`<h2>Houses</h2><table><thead><tr>` +
			`<th>Address</th><th>Floors</th><th>Category</th><th>Heating</th><th>Area</th><th>Population</th>` +
			`</tr></thead><tbody>`)
		for _, h := range r.Houses {
			b.WriteString(`<tr`)
			if h.Address == r.MinArea.Address {
				b.WriteString(` class="highlight"`)
			}
			b.WriteString(`><td>`)
			b.WriteString(templ.EscapeString(h.Address))
			b.WriteString(`</td><td class="num">`)
			b.WriteString(strconv.Itoa(h.FloorCount))
			b.WriteString(`</td><td>`)
			b.WriteString(templ.EscapeString(h.Category.String()))
			b.WriteString(`</td><td class="num">`)
			b.WriteString(formatFloat(h.HeatingValue))
			b.WriteString(`</td><td class="num">`)
			b.WriteString(formatFloat(h.AreaResidential))
			b.WriteString(`</td><td class="num">`)
			b.WriteString(strconv.Itoa(h.Population))
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<h2>Analyze another file</h2>` +
			`<form method="post" action="/api/analyze" enctype="multipart/form-data">` +
			`<input type="file" name="file" accept=".csv,text/csv"> <button type="submit">Analyze</button>` +
			`</form><p class="meta"><a href="/api/template">Download CSV template</a></p>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
