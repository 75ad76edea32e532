package web

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so components can render
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

// Layout wraps body in the HTML document shared by every page.
func Layout(vc ViewContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="`)
		w.text(vc.Lang)
		w.raw(`"><head><meta charset="utf-8"><title>`)
		w.text(vc.Title)
		w.raw(`</title></head><body><main><h1>`)
		w.text(vc.Title)
		w.raw(`</h1>`)
		if vc.Period != "" {
			w.raw(`<p class="period">`)
			w.text(vc.Period)
			w.raw(`</p>`)
		}
		w.component(ctx, Errors(vc))
		w.component(ctx, FilterForm(vc))
		w.component(ctx, FilterSummary(vc))
		w.component(ctx, body)
		w.raw(`</main></body></html>`)
		return w.err
	})
}

// Errors lists the field errors of a submitted form.
func Errors(vc ViewContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		if len(vc.Errors) == 0 {
			return nil
		}
		w := &writer{w: out}
		w.raw(`<ul class="errors">`)
		for _, fe := range vc.Errors {
			w.raw(`<li data-field="`)
			w.text(fe.Field)
			w.raw(`">`)
			w.text(fe.Message)
			w.raw(`</li>`)
		}
		w.raw(`</ul>`)
		return w.err
	})
}

// FilterForm renders a select list per filter field with known choices.
// The option whose label matches the selected filter label is preselected.
func FilterForm(vc ViewContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		if len(vc.Choices) == 0 {
			return nil
		}
		names := make([]string, 0, len(vc.Choices))
		for name := range vc.Choices {
			names = append(names, name)
		}
		sort.Strings(names)

		w := &writer{w: out}
		w.raw(`<form method="get" class="filter">`)
		for _, name := range names {
			w.raw(`<select name="`)
			w.text(name)
			w.raw(`"><option value=""></option>`)
			for _, c := range vc.Choices[name] {
				w.raw(`<option value="`)
				w.text(strconv.FormatInt(c.ID, 10))
				w.raw(`"`)
				if sel, ok := vc.Labels[name]; ok && sel == c.Label {
					w.raw(` selected`)
				}
				w.raw(`>`)
				w.text(c.Label)
				w.raw(`</option>`)
			}
			w.raw(`</select>`)
		}
		w.raw(`<button type="submit">OK</button></form>`)
		return w.err
	})
}

// FilterSummary shows the labels of the selected filter values.
func FilterSummary(vc ViewContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		if len(vc.Labels) == 0 {
			return nil
		}
		keys := make([]string, 0, len(vc.Labels))
		for k := range vc.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := &writer{w: out}
		w.raw(`<dl class="filters">`)
		for _, k := range keys {
			w.raw(`<dt>`)
			w.text(k)
			w.raw(`</dt><dd>`)
			w.text(vc.Labels[k])
			w.raw(`</dd>`)
		}
		w.raw(`</dl>`)
		return w.err
	})
}

// TableView renders t, or empty when t has no rows.
func TableView(t Table, empty string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		if t.Empty() {
			w.raw(`<p class="empty">`)
			w.text(empty)
			w.raw(`</p>`)
			return w.err
		}
		w.raw(`<table><thead><tr>`)
		for _, h := range t.Headers {
			w.raw(`<th>`)
			w.text(h)
			w.raw(`</th>`)
		}
		w.raw(`</tr></thead><tbody>`)
		for _, row := range t.Rows {
			w.raw(`<tr>`)
			for _, cell := range row {
				w.raw(`<td>`)
				w.text(cell)
				w.raw(`</td>`)
			}
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table>`)
		return w.err
	})
}

// Pager renders page links that keep the filter query string.
func Pager(p *Page, filterURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		if p == nil || p.NumPages <= 1 {
			return nil
		}
		w := &writer{w: out}
		link := func(n int, label string) {
			w.raw(`<a href="`)
			w.text("?page=" + strconv.Itoa(n) + filterURL)
			w.raw(`">`)
			w.text(label)
			w.raw(`</a>`)
		}

		w.raw(`<nav class="pagination">`)
		if p.HasPrevious {
			link(p.Number-1, "«")
		}
		for _, n := range p.Range {
			switch n {
			case 0:
				w.raw(`<span class="ellipsis">…</span>`)
			case p.Number:
				w.raw(`<span class="current">`)
				w.text(strconv.Itoa(n))
				w.raw(`</span>`)
			default:
				link(n, strconv.Itoa(n))
			}
		}
		if p.HasNext {
			link(p.Number+1, "»")
		}
		w.raw(`</nav>`)
		return w.err
	})
}

// ReportPage is the full page of a report or listing.
func ReportPage(vc ViewContext, t Table) templ.Component {
	return Layout(vc, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if !vc.ShowResults {
			return nil
		}
		w := &writer{w: out}
		w.component(ctx, TableView(t, vc.NoEntriesMessage))
		w.component(ctx, Pager(vc.Page, vc.FilterURL))
		return w.err
	}))
}
