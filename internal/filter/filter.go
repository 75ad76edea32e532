// Package filter parses report query strings into typed, validated filter
// values. A form that is not ready is not an error: reports render their
// empty state and show the field errors instead.
package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Kind is the value family of a filter field.
type Kind int

const (
	// KindDateRange reads <name>_0 and <name>_1 as an inclusive day range.
	KindDateRange Kind = iota + 1
	// KindID reads a positive foreign-key id.
	KindID
	// KindYear reads a four-digit year.
	KindYear
)

// Field describes one filter of a report.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Spec lists the fields of one report's filter form.
type Spec []Field

// dateLayouts are tried in order. The first is the one shown to users.
var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// reserved query parameters never take part in filtering.
var reserved = map[string]bool{"page": true, "format": true, "lang": true}

// Form is the result of parsing a query string against a Spec.
type Form struct {
	// Submitted is true when at least one non-reserved parameter has a value.
	Submitted bool
	// Ready is true when every required field is present and every present
	// field parses.
	Ready bool

	errs   []domain.FieldError
	query  string
	ranges map[string]domain.DateRange
	ids    map[string]int64
	years  map[string]int
}

// Parse reads values according to spec.
func Parse(values url.Values, spec Spec) Form {
	f := Form{
		ranges: make(map[string]domain.DateRange),
		ids:    make(map[string]int64),
		years:  make(map[string]int),
	}
	f.Submitted, f.query = encode(values)

	for _, field := range spec {
		var msg string
		switch field.Kind {
		case KindDateRange:
			msg = f.parseRange(values, field)
		case KindID:
			msg = f.parseID(values, field)
		case KindYear:
			msg = f.parseYear(values, field)
		default:
			msg = fmt.Sprintf("unsupported field kind %d", field.Kind)
		}
		if msg != "" {
			f.errs = append(f.errs, domain.FieldError{Field: field.Name, Message: msg})
		}
	}

	f.Ready = len(f.errs) == 0
	return f
}

func (f *Form) parseRange(values url.Values, field Field) string {
	rawFrom := strings.TrimSpace(values.Get(field.Name + "_0"))
	rawTo := strings.TrimSpace(values.Get(field.Name + "_1"))

	if rawFrom == "" && rawTo == "" {
		if field.Required {
			return "required"
		}
		return ""
	}
	if rawFrom == "" || rawTo == "" {
		return "both dates are required"
	}

	from, ok := parseDate(rawFrom)
	if !ok {
		return fmt.Sprintf("invalid date %q", rawFrom)
	}
	to, ok := parseDate(rawTo)
	if !ok {
		return fmt.Sprintf("invalid date %q", rawTo)
	}
	if from.After(to) {
		return "start date is after end date"
	}

	f.ranges[field.Name] = domain.DateRange{From: from, To: to}
	return ""
}

func (f *Form) parseID(values url.Values, field Field) string {
	raw := strings.TrimSpace(values.Get(field.Name))
	if raw == "" {
		if field.Required {
			return "required"
		}
		return ""
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Sprintf("invalid id %q", raw)
	}
	f.ids[field.Name] = id
	return ""
}

func (f *Form) parseYear(values url.Values, field Field) string {
	raw := strings.TrimSpace(values.Get(field.Name))
	if raw == "" {
		if field.Required {
			return "required"
		}
		return ""
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 1000 || year > 9999 {
		return fmt.Sprintf("invalid year %q", raw)
	}
	f.years[field.Name] = year
	return ""
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// encode re-encodes the non-reserved parameters in key order.
func encode(values url.Values) (submitted bool, query string) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		for _, v := range values[k] {
			if strings.TrimSpace(v) != "" {
				submitted = true
			}
			sb.WriteByte('&')
			sb.WriteString(url.QueryEscape(k))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return submitted, sb.String()
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// ShowResults reports whether the report should render its results.
func (f Form) ShowResults() bool {
	return f.Submitted && f.Ready
}

// Errors returns the field errors to display. A form nobody submitted shows none.
func (f Form) Errors() []domain.FieldError {
	if !f.Submitted {
		return nil
	}
	return f.errs
}

// Query returns the submitted parameters as "&k=v..." for pagination links,
// or "" when there are none.
func (f Form) Query() string {
	return f.query
}

// Range returns the parsed date range of field name.
func (f Form) Range(name string) (domain.DateRange, bool) {
	r, ok := f.ranges[name]
	return r, ok
}

// RangePtr is Range returning nil when the range is absent.
func (f Form) RangePtr(name string) *domain.DateRange {
	if r, ok := f.ranges[name]; ok {
		return &r
	}
	return nil
}

// ID returns the parsed id of field name, or nil when absent.
func (f Form) ID(name string) *int64 {
	if id, ok := f.ids[name]; ok {
		return &id
	}
	return nil
}

// Year returns the parsed year of field name, or nil when absent.
func (f Form) Year(name string) *int {
	if y, ok := f.years[name]; ok {
		return &y
	}
	return nil
}

// FormatRange renders r the way dates are typed into the forms.
func FormatRange(r domain.DateRange) string {
	return r.From.Format(dateLayouts[0]) + " - " + r.To.Format(dateLayouts[0])
}
