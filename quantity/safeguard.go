package quantity

import "github.com/Mathildevib/DAKI2-grp3-final/ranking"

// Safeguard patches the quantity matrix so no recommended part ships with a
// zero quantity: for each given row, every label in the top-k by probability
// with a predicted quantity of 0 is raised to 1. Labels outside the top-k are
// left alone.
func Safeguard(proba [][]float64, qty [][]int, rows []int, k int) {
	for _, r := range rows {
		for _, l := range ranking.TopK(proba[r], k) {
			if qty[r][l] == 0 {
				qty[r][l] = 1
			}
		}
	}
}
