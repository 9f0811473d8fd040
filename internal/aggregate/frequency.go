package aggregate

// weekSlots covers week indexes 0..53. Index 0 is never filled and 53 is the
// last week counted.
const weekSlots = 54

// Matrix is a [year row][bucket] grid of weighted values
type Matrix [][]float64

func newMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Max returns the largest cell, or 0 for an empty matrix
func (m Matrix) Max() float64 {
	max := 0.0
	for _, row := range m {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// ColumnTotals sums every row into one total per bucket
func (m Matrix) ColumnTotals(cols int) []float64 {
	totals := make([]float64, cols)
	for _, row := range m {
		for i, v := range row {
			if i < cols {
				totals[i] += v
			}
		}
	}
	return totals
}

// BreakdownMatrix holds the tooltip breakdown of every matrix cell
type BreakdownMatrix [][]Breakdown

func newBreakdownMatrix(rows, cols int) BreakdownMatrix {
	m := make(BreakdownMatrix, rows)
	for i := range m {
		m[i] = make([]Breakdown, cols)
		for j := range m[i] {
			m[i][j] = NewBreakdown()
		}
	}
	return m
}

// FrequencyData is the day/month/hour/week bucketing of a set of records.
// Matrix rows follow Years.
type FrequencyData struct {
	Years  []int
	Metric Metric

	ActivityCount     int
	HourActivityCount int

	Day   Matrix
	Month Matrix
	Hour  Matrix

	DayBreakdowns   BreakdownMatrix
	MonthBreakdowns BreakdownMatrix
	HourBreakdowns  BreakdownMatrix

	WeekTotals  []float64
	DayTotals   []float64
	MonthTotals []float64
	HourTotals  []float64
}

// BuildFrequencyData buckets records into the frequency matrices. Records
// failing filter are skipped. An empty metric counts activities; otherwise
// each record adds its share of the metric. Breakdowns always count.
func BuildFrequencyData(records []Record, years []int, isOther func(string) bool, filter Predicate, metric Metric) FrequencyData {
	rows := make(map[int]int, len(years))
	for i, y := range years {
		rows[y] = i
	}

	data := FrequencyData{
		Years:           append([]int(nil), years...),
		Metric:          metric,
		Day:             newMatrix(len(years), 7),
		Month:           newMatrix(len(years), 12),
		Hour:            newMatrix(len(years), 24),
		DayBreakdowns:   newBreakdownMatrix(len(years), 7),
		MonthBreakdowns: newBreakdownMatrix(len(years), 12),
		HourBreakdowns:  newBreakdownMatrix(len(years), 24),
		WeekTotals:      make([]float64, weekSlots),
	}

	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		row, ok := rows[r.Year]
		if !ok {
			continue
		}

		weight := r.Weight(metric)
		other := isOther != nil && isOther(r.Type)

		data.ActivityCount++
		data.Day[row][r.DayIndex] += weight
		data.Month[row][r.MonthIndex] += weight
		if r.WeekIndex >= 1 && r.WeekIndex < weekSlots {
			data.WeekTotals[r.WeekIndex] += weight
		}
		data.DayBreakdowns[row][r.DayIndex].Add(r.Type, r.Subtype, other)
		data.MonthBreakdowns[row][r.MonthIndex].Add(r.Type, r.Subtype, other)

		if r.HasHour {
			data.HourActivityCount++
			data.Hour[row][r.Hour] += weight
			data.HourBreakdowns[row][r.Hour].Add(r.Type, r.Subtype, other)
		}
	}

	data.DayTotals = data.Day.ColumnTotals(7)
	data.MonthTotals = data.Month.ColumnTotals(12)
	data.HourTotals = data.Hour.ColumnTotals(24)
	return data
}

// Empty reports a selection with nothing to chart. Callers render an
// empty-state card instead of zero matrices.
func (d FrequencyData) Empty() bool {
	return d.ActivityCount <= 0
}

// BestIndex returns the index of the first maximum
func BestIndex(totals []float64) int {
	best := 0
	for i, v := range totals {
		if v > totals[best] {
			best = i
		}
	}
	return best
}

// BestWeek returns the first week with the highest total. Week 0, the
// partial week before January 1, is never considered.
func BestWeek(weekTotals []float64) int {
	best := 1
	if len(weekTotals) <= best {
		return best
	}
	for i := 1; i < len(weekTotals); i++ {
		if weekTotals[i] > weekTotals[best] {
			best = i
		}
	}
	return best
}
