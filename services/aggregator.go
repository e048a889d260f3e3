package services

import (
	"sort"

	"playstore-dashboard/models"
)

// SignificantGrowthPct is the month-over-month growth above which a period is flagged.
const SignificantGrowthPct = 20.0

// GroupCount counts rows per key tuple and spreads the counts over one column
// per distinct pivot value. Rows with an empty key or pivot value are ignored.
// Rows are ordered by key tuple and columns alphabetically; combinations that
// never occur hold 0.
func GroupCount[T any](rows []T, keyNames []string, keys func(T) []string, pivot func(T) string) *models.PivotTable {
	type cell struct {
		keys  []string
		count map[string]int
	}

	groups := make(map[string]*cell)
	columns := make(map[string]struct{})

	for _, r := range rows {
		p := pivot(r)
		ks := keys(r)
		if p == "" || hasEmpty(ks) {
			continue
		}
		id := joinKey(ks)
		g, ok := groups[id]
		if !ok {
			g = &cell{keys: ks, count: make(map[string]int)}
			groups[id] = g
		}
		g.count[p]++
		columns[p] = struct{}{}
	}

	table := &models.PivotTable{KeyNames: keyNames}
	for c := range columns {
		table.Columns = append(table.Columns, c)
	}
	sort.Strings(table.Columns)

	for _, g := range groups {
		row := models.PivotRow{Keys: g.keys, Counts: make([]int, len(table.Columns))}
		for i, c := range table.Columns {
			row.Counts[i] = g.count[c]
		}
		table.Rows = append(table.Rows, row)
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return lessKeys(table.Rows[i].Keys, table.Rows[j].Keys)
	})
	return table
}

// Sum is the total of a value over one group.
type Sum[K comparable] struct {
	Key   K
	Total uint64
}

// GroupSum totals value per distinct key. Groups appear in the order their key
// was first seen.
func GroupSum[T any, K comparable](rows []T, key func(T) K, value func(T) uint64) []Sum[K] {
	index := make(map[K]int)
	var out []Sum[K]
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Sum[K]{Key: k})
		}
		out[i].Total += value(r)
	}
	return out
}

// HighlightFlag reports, per group, whether any row's value exceeds threshold.
func HighlightFlag[T any](rows []T, key func(T) string, value func(T) uint64, threshold uint64) map[string]bool {
	flags := make(map[string]bool)
	for _, r := range rows {
		k := key(r)
		flags[k] = flags[k] || value(r) > threshold
	}
	return flags
}

// MonthOverMonthGrowth orders the series by category then period and fills in,
// within each category, the previous period's installs, the percentage growth
// and the significance flag. Growth stays nil for a category's first period and
// whenever the previous total is zero. The input slice is not modified.
func MonthOverMonthGrowth(series []models.MonthlyCategorySeries) []models.MonthlyCategorySeries {
	out := make([]models.MonthlyCategorySeries, len(series))
	copy(out, series)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].YearMonth.Before(out[j].YearMonth)
	})

	for i := range out {
		out[i].Previous, out[i].GrowthPct, out[i].Significant = nil, nil, false
		if i == 0 || out[i-1].Category != out[i].Category {
			continue
		}
		prev := out[i-1].Installs
		out[i].Previous = &prev
		if prev == 0 {
			continue
		}
		growth := (float64(out[i].Installs) - float64(prev)) / float64(prev) * 100
		out[i].GrowthPct = &growth
		out[i].Significant = growth > SignificantGrowthPct
	}
	return out
}

func hasEmpty(ks []string) bool {
	for _, k := range ks {
		if k == "" {
			return true
		}
	}
	return false
}

func joinKey(ks []string) string {
	n := 0
	for _, k := range ks {
		n += len(k) + 1
	}
	b := make([]byte, 0, n)
	for _, k := range ks {
		b = append(b, k...)
		b = append(b, 0)
	}
	return string(b)
}

func lessKeys(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
