package grouping

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	author string
	kind   string
	count  int
}

type group struct {
	author string
	kinds  []string
	total  int
}

func byAuthor(rows []row) []group {
	return slices.Collect(Adjacent(
		slices.Values(rows),
		func(r row) string { return r.author },
		func(r row) group { return group{author: r.author} },
		func(g group, r row) group {
			g.kinds = append(g.kinds, r.kind)
			g.total += r.count
			return g
		},
	))
}

func TestAdjacent_EmitsTrailingGroup(t *testing.T) {
	t.Parallel()

	got := byAuthor([]row{{"A", "X", 1}, {"A", "Y", 2}, {"B", "X", 3}})

	assert.Equal(t, []group{
		{author: "A", kinds: []string{"X", "Y"}, total: 3},
		{author: "B", kinds: []string{"X"}, total: 3},
	}, got)
}

func TestAdjacent_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, byAuthor(nil))
}

func TestAdjacent_SingleRow(t *testing.T) {
	t.Parallel()

	got := byAuthor([]row{{"A", "X", 4}})
	assert.Equal(t, []group{{author: "A", kinds: []string{"X"}, total: 4}}, got)
}

func TestAdjacent_NonAdjacentKeysSplit(t *testing.T) {
	t.Parallel()

	got := byAuthor([]row{{"A", "X", 1}, {"B", "X", 1}, {"A", "Y", 1}})
	assert.Len(t, got, 3)
	assert.Equal(t, "A", got[2].author)
}

func TestAdjacent_StopsEarly(t *testing.T) {
	t.Parallel()

	seq := Adjacent(
		slices.Values([]int{1, 1, 2, 3}),
		func(v int) int { return v },
		func(int) int { return 0 },
		func(a, v int) int { return a + v },
	)

	var got []int
	for sum := range seq {
		got = append(got, sum)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{2, 2}, got)
}
