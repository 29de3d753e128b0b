package dialect

import "math"

// detectHeader decides whether row 0 of table is a header row, per
// spec.md §4.5. Every cell is classified again with classifier; the
// scorer's TypedColumn vector is not consulted.
func detectHeader(table *Table, classifier *Classifier) bool {
	if len(table.Rows) < 2 {
		return false
	}

	c := table.maxColumns()
	votes := 0
	voters := 0

	for j := 0; j < c; j++ {
		row0 := cellAt(table.Rows[0], j)
		row0Type := classifier.Classify(row0)

		restCounts := make(map[DataType]int)
		var restLens []float64
		restNonEmpty := 0
		for _, row := range table.Rows[1:] {
			cell := cellAt(row, j)
			dt := classifier.Classify(cell)
			restCounts[dt]++
			if dt != Empty {
				restNonEmpty++
			}
			restLens = append(restLens, float64(len(trimASCIISpace(cell))))
		}
		if len(restLens) == 0 {
			continue
		}
		voters++

		headerLike := false
		if restNonEmpty > 0 {
			restDominant := computeDominant(restCounts)
			if row0Type == Text && restDominant != Text && restDominant != Empty {
				headerLike = true
			}
		}
		if row0Type == Text && lengthOutlier(float64(len(trimASCIISpace(row0))), restLens) {
			headerLike = true
		}
		if headerLike {
			votes++
		}
	}

	if voters == 0 {
		return false
	}
	return votes*2 > voters
}

func cellAt(row Row, j int) []byte {
	if j < len(row) {
		return row[j]
	}
	return nil
}

// lengthOutlier reports whether v differs from the mean of rest by
// more than two standard deviations. With fewer than two rest values
// the standard deviation is not a meaningful statistic (it is always
// zero), so the rule does not fire — see DESIGN.md for how this
// resolves the two-row-table edge case left open by spec.md §9.
func lengthOutlier(v float64, rest []float64) bool {
	if len(rest) < 2 {
		return false
	}
	var sum float64
	for _, r := range rest {
		sum += r
	}
	mean := sum / float64(len(rest))

	var variance float64
	for _, r := range rest {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rest))
	stddev := math.Sqrt(variance)

	if stddev == 0 {
		return v != mean
	}
	return math.Abs(v-mean) > 2*stddev
}
