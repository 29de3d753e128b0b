package dialect

import "math"

// scoreTable computes the uniformity score and per-column TypedColumn
// vector for table, per spec.md §4.4. minRows triggers the
// degenerate-table penalty (score 0) when the table has fewer rows
// than required.
func scoreTable(table *Table, classifier *Classifier, minRows int) (float64, []TypedColumn) {
	columns := classifyColumns(table, classifier)

	if len(table.Rows) < minRows {
		return 0, columns
	}

	var raw float64
	for _, col := range columns {
		raw += col.Dominant.weight() * dominantFraction(col) * float64(col.NonEmpty)
	}

	raw *= rowLengthPenalty(table.Rows)
	raw *= emptyFieldPenalty(columns)

	if table.maxColumns() == 1 {
		raw *= 0.1
	}

	return raw, columns
}

func dominantFraction(col TypedColumn) float64 {
	if col.NonEmpty == 0 {
		return 0
	}
	return float64(col.Counts[col.Dominant]) / float64(col.NonEmpty)
}

// classifyColumns tags every cell in table and builds one TypedColumn
// per column position, 0..C-1.
func classifyColumns(table *Table, classifier *Classifier) []TypedColumn {
	c := table.maxColumns()
	columns := make([]TypedColumn, c)
	for j := range columns {
		columns[j].Counts = make(map[DataType]int)
	}

	for _, row := range table.Rows {
		for j, cell := range row {
			dt := classifier.Classify(cell)
			columns[j].Counts[dt]++
			columns[j].HasData = true
			if dt != Empty {
				columns[j].NonEmpty++
			}
		}
	}

	for j := range columns {
		columns[j].Dominant = computeDominant(columns[j].Counts)
	}

	return columns
}

// rowLengthPenalty multiplies the running total by 1/(1+sigma/mu),
// defining sigma/mu = 0 when mu = 0.
func rowLengthPenalty(rows []Row) float64 {
	if len(rows) == 0 {
		return 1
	}
	var sum float64
	for _, r := range rows {
		sum += float64(len(r))
	}
	mean := sum / float64(len(rows))
	if mean == 0 {
		return 1
	}

	var variance float64
	for _, r := range rows {
		d := float64(len(r)) - mean
		variance += d * d
	}
	variance /= float64(len(rows))
	stddev := math.Sqrt(variance)

	return 1 / (1 + stddev/mean)
}

// emptyFieldPenalty multiplies the running total by (1-e)^2, where e
// is the fraction of cells across the table that are Empty.
func emptyFieldPenalty(columns []TypedColumn) float64 {
	var total, empty int
	for _, col := range columns {
		for dt, n := range col.Counts {
			total += n
			if dt == Empty {
				empty += n
			}
		}
	}
	if total == 0 {
		return 1
	}
	e := float64(empty) / float64(total)
	return (1 - e) * (1 - e)
}
