package rest

import (
	"strconv"

	"github.com/heartmarshall/sapl-backend/internal/transport/web"
)

// windowLength is the page count up to which every page gets a link.
const windowLength = 10

// parsePageNumber reads the requested page. Anything that is not a
// positive integer means the first page.
func parsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NewPage describes page number of total items. Numbers past the last page
// clamp to it. An empty listing still has one page.
func NewPage(number, total, perPage int) web.Page {
	if perPage < 1 {
		perPage = 1
	}
	numPages := max(1, (total+perPage-1)/perPage)
	number = min(max(number, 1), numPages)
	return web.Page{
		Number:      number,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		Range:       PageRange(number, numPages),
	}
}

// Paginate returns the slice of items on the requested page.
func Paginate[T any](items []T, rawPage string, perPage int) ([]T, web.Page) {
	page := NewPage(parsePageNumber(rawPage), len(items), perPage)
	start := (page.Number - 1) * perPage
	end := min(start+perPage, len(items))
	if start >= end {
		return []T{}, page
	}
	return items[start:end], page
}

// PageRange lists the page links to show around index. Short listings show
// every page; longer ones keep the first and last two pages plus the
// neighbourhood of index, with 0 marking each gap.
func PageRange(index, numPages int) []int {
	if numPages <= windowLength {
		return seq(1, numPages)
	}

	var out []int
	switch {
	case index <= 5:
		out = append(seq(1, windowLength-2), 0, numPages-1, numPages)
	case index+3 >= numPages:
		out = append([]int{1, 2, 0}, seq(numPages-7, numPages)...)
	default:
		out = append([]int{1, 2, 0}, seq(index-1, index+1)...)
		out = append(out, 0, numPages-1, numPages)
	}
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
