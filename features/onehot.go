package features

import "sort"

// OneHot encodes the asset category as a single indicator column. Categories
// are sorted so column order is stable; a category not seen during training
// encodes to all zeros.
type OneHot struct {
	Categories []string `json:"categories"`

	index map[string]int
}

// TrainOneHot collects the distinct values and fixes their column order.
func TrainOneHot(values []string) *OneHot {
	seen := make(map[string]bool)
	for _, v := range values {
		seen[v] = true
	}
	categories := make([]string, 0, len(seen))
	for v := range seen {
		categories = append(categories, v)
	}
	sort.Strings(categories)
	return &OneHot{Categories: categories}
}

// Len returns the number of indicator columns.
func (o *OneHot) Len() int {
	return len(o.Categories)
}

// Index returns the column for a category, or false for an unknown one.
func (o *OneHot) Index(value string) (int, bool) {
	if o.index == nil {
		o.index = make(map[string]int, len(o.Categories))
		for i, c := range o.Categories {
			o.index[c] = i
		}
	}
	i, ok := o.index[value]
	return i, ok
}
