// Package web renders report views as HTML with templ components.
package web

import "github.com/heartmarshall/sapl-backend/internal/domain"

// ViewContext is everything a report or listing page needs to render,
// in HTML or JSON.
type ViewContext struct {
	Title            string                     `json:"title"`
	Lang             string                     `json:"lang"`
	ShowResults      bool                       `json:"show_results"`
	FilterURL        string                     `json:"filter_url,omitempty"`
	Period           string                     `json:"period,omitempty"`
	Labels           map[string]string          `json:"labels,omitempty"`
	Choices          map[string][]domain.Choice `json:"-"`
	Errors           []domain.FieldError        `json:"errors,omitempty"`
	Data             any                        `json:"data,omitempty"`
	Page             *Page                      `json:"page,omitempty"`
	NoEntriesMessage string                     `json:"no_entries_message,omitempty"`
}

// Page describes the current page of a paginated listing. A zero in Range
// stands for an ellipsis.
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Range       []int `json:"page_range"`
}

// Table is the HTML rendition of a report's rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether t has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}
