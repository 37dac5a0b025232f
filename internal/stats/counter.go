package stats

import (
	"sort"

	"github.com/tinytelemetry/faina/internal/model"
)

// Counter is a frequency table from label to occurrence count.
type Counter map[string]int64

// Inc adds one occurrence of label.
func (c Counter) Inc(label string) {
	c[label]++
}

// Merge adds every count from other into c.
func (c Counter) Merge(other Counter) {
	for label, n := range other {
		c[label] += n
	}
}

// Total returns the sum of all counts.
func (c Counter) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// Rank returns the labels ordered by count, highest first.
// Equal counts are ordered by label so output is deterministic.
func (c Counter) Rank() []model.RankedItem {
	items := make([]model.RankedItem, 0, len(c))
	for label, n := range c {
		items = append(items, model.RankedItem{Label: label, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
	return items
}
