package labels

import "sort"

// Space maps spare-part identifiers to stable column indices. The class list
// is sorted, so a part's column depends only on the set of parts seen during
// Fit, not on row order.
type Space struct {
	Classes []string `json:"classes"`

	index   map[string]int
	dropped int
}

// Fit collects the distinct part identifiers in partLists and returns a Space
// with one column per part, in sorted order.
func Fit(partLists [][]string) *Space {
	seen := make(map[string]bool)
	for _, parts := range partLists {
		for _, p := range parts {
			seen[p] = true
		}
	}
	classes := make([]string, 0, len(seen))
	for p := range seen {
		classes = append(classes, p)
	}
	sort.Strings(classes)
	return &Space{Classes: classes}
}

// Len returns the number of columns.
func (s *Space) Len() int {
	return len(s.Classes)
}

// Label returns the part identifier for column i.
func (s *Space) Label(i int) string {
	return s.Classes[i]
}

// Index returns the column for a part identifier.
func (s *Space) Index(label string) (int, bool) {
	if s.index == nil {
		s.index = make(map[string]int, len(s.Classes))
		for i, c := range s.Classes {
			s.index[c] = i
		}
	}
	i, ok := s.index[label]
	return i, ok
}

// Transform builds the presence and quantity matrices for rows of parts with
// aligned quantities. Row i of the result has a 1 in the column of every part
// used on work order i, and the used quantity in the same column of the count
// matrix; all other entries are zero. A part with a missing or non-positive
// quantity is skipped, so a presence bit always has a positive count behind
// it. When a part repeats within a row, the last quantity wins. Parts not
// seen during Fit are dropped and counted; Dropped reports the running total.
func (s *Space) Transform(partLists [][]string, quantities [][]int) (yBin, yCnt [][]int) {
	yBin = make([][]int, len(partLists))
	yCnt = make([][]int, len(partLists))
	for i, parts := range partLists {
		bin := make([]int, s.Len())
		cnt := make([]int, s.Len())
		qtys := quantities[i]
		for j, p := range parts {
			if j >= len(qtys) {
				break
			}
			q := qtys[j]
			if q <= 0 {
				continue
			}
			col, ok := s.Index(p)
			if !ok {
				s.dropped++
				continue
			}
			bin[col] = 1
			cnt[col] = q
		}
		yBin[i] = bin
		yCnt[i] = cnt
	}
	return yBin, yCnt
}

// Dropped returns how many part occurrences were discarded by Transform
// because the part was not part of the fitted class list.
func (s *Space) Dropped() int {
	return s.dropped
}
