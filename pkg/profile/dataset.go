package profile

import (
	"fmt"
	"math"
	"regexp"

	"gonum.org/v1/gonum/stat"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

// =============================================================================
// DATASET-LEVEL ANALYSIS
// Cross-column findings: naming conventions, downcast suggestions, pairwise
// correlation, duplicate columns, candidate keys, missing-data summary.
// =============================================================================

// correlationThreshold is the |r| bound above which a pair is reported.
const correlationThreshold = 0.7

var conventionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"snake_case", regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)},
	{"camelCase", regexp.MustCompile(`^[a-z][a-z0-9]*([A-Z][a-z0-9]*)+$`)},
	{"PascalCase", regexp.MustCompile(`^([A-Z][a-z0-9]+)+$`)},
	{"kebab-case", regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)+$`)},
	{"UPPER_CASE", regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)},
}

func columnConvention(name string) string {
	for _, c := range conventionPatterns {
		if c.re.MatchString(name) {
			return c.name
		}
	}
	return "mixed"
}

// analyzeNamingConventions classifies every column name and reports the
// dominant convention with its consistency ratio.
func analyzeNamingConventions(columns []string) Patterns {
	p := Patterns{NamingConventions: make(map[string]string, len(columns))}
	counts := make(map[string]int)
	for _, c := range columns {
		conv := columnConvention(c)
		p.NamingConventions[c] = conv
		counts[conv]++
	}
	if len(columns) == 0 {
		p.DominantConvention = "mixed"
		return p
	}
	// Deterministic: scan in pattern declaration order, then "mixed".
	order := make([]string, 0, len(conventionPatterns)+1)
	for _, c := range conventionPatterns {
		order = append(order, c.name)
	}
	order = append(order, "mixed")
	best, bestCount := "mixed", -1
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	p.DominantConvention = best
	p.ConsistencyRatio = float64(bestCount) / float64(len(columns))
	return p
}

// suggestDowncasts proposes narrower numeric storage per column profile.
func suggestDowncasts(columns []string, profiles map[string]*ColumnProfile) []Downcast {
	var out []Downcast
	for _, name := range columns {
		cp := profiles[name]
		if cp == nil || cp.Kind != KindNumeric || cp.Numeric == nil || cp.Count == 0 {
			continue
		}
		np := cp.Numeric
		if np.IsInteger {
			suggested := ""
			switch {
			case np.Min >= math.MinInt8 && np.Max <= math.MaxInt8:
				suggested = "int8"
			case np.Min >= math.MinInt16 && np.Max <= math.MaxInt16:
				suggested = "int16"
			case np.Min >= math.MinInt32 && np.Max <= math.MaxInt32:
				suggested = "int32"
			}
			if suggested != "" {
				out = append(out, Downcast{
					Column:    name,
					Current:   "int64",
					Suggested: suggested,
					Reason: fmt.Sprintf("integer values span [%g, %g], which fits %s",
						np.Min, np.Max, suggested),
				})
			}
			continue
		}
		if np.Min >= -math.MaxFloat32 && np.Max <= math.MaxFloat32 {
			out = append(out, Downcast{
				Column:    name,
				Current:   "float64",
				Suggested: "float32",
				Reason: fmt.Sprintf("values span [%g, %g], within float32 range",
					np.Min, np.Max),
			})
		}
	}
	return out
}

// numericColumnVectors extracts aligned float vectors for every numeric
// column; rows where a cell does not coerce are recorded as NaN.
func numericColumnVectors(t *tabular.Table, profiles map[string]*ColumnProfile) (names []string, vectors [][]float64) {
	for _, name := range t.Columns {
		cp := profiles[name]
		if cp == nil || cp.Kind != KindNumeric {
			continue
		}
		vec := make([]float64, t.NumRows())
		for i, v := range t.Column(name) {
			if f, ok := tabular.AsFloat(v); ok {
				vec[i] = f
			} else {
				vec[i] = math.NaN()
			}
		}
		names = append(names, name)
		vectors = append(vectors, vec)
	}
	return names, vectors
}

// findCorrelations reports numeric column pairs with |Pearson r| above the
// threshold, in column order.
func findCorrelations(t *tabular.Table, profiles map[string]*ColumnProfile) []Correlation {
	names, vectors := numericColumnVectors(t, profiles)
	var out []Correlation
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			var xs, ys []float64
			for r := 0; r < t.NumRows(); r++ {
				x, y := vectors[i][r], vectors[j][r]
				if math.IsNaN(x) || math.IsNaN(y) {
					continue
				}
				xs = append(xs, x)
				ys = append(ys, y)
			}
			if len(xs) < 3 {
				continue
			}
			r := stat.Correlation(xs, ys, nil)
			if math.IsNaN(r) {
				continue // constant column
			}
			if math.Abs(r) > correlationThreshold {
				out = append(out, Correlation{
					ColumnA:     names[i],
					ColumnB:     names[j],
					Coefficient: r,
				})
			}
		}
	}
	return out
}

// findDuplicateColumns reports column pairs whose rendered values are equal
// on every row.
func findDuplicateColumns(t *tabular.Table) []DuplicatePair {
	rendered := make([][]string, len(t.Columns))
	for i, name := range t.Columns {
		col := t.Column(name)
		rendered[i] = make([]string, len(col))
		for r, v := range col {
			rendered[i][r] = tabular.AsString(v)
		}
	}
	var out []DuplicatePair
	for i := 0; i < len(t.Columns); i++ {
		for j := i + 1; j < len(t.Columns); j++ {
			if equalStrings(rendered[i], rendered[j]) {
				out = append(out, DuplicatePair{ColumnA: t.Columns[i], ColumnB: t.Columns[j]})
			}
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// findCandidateKeys reports columns whose cardinality equals the row count
// with no nulls.
func findCandidateKeys(t *tabular.Table) []string {
	var out []string
	for _, name := range t.Columns {
		col := t.Column(name)
		distinct := make(map[string]struct{}, len(col))
		ok := true
		for _, v := range col {
			if tabular.IsNull(v) {
				ok = false
				break
			}
			distinct[tabular.AsString(v)] = struct{}{}
		}
		if ok && len(distinct) == len(col) && len(col) > 0 {
			out = append(out, name)
		}
	}
	return out
}

// missingSummary computes per-column null counts and overall completeness.
func missingSummary(t *tabular.Table) QualityMetrics {
	qm := QualityMetrics{MissingByColumn: make(map[string]MissingStat, len(t.Columns))}
	totalCells := t.NumRows() * t.NumColumns()
	totalMissing := 0
	for _, name := range t.Columns {
		n := 0
		for _, v := range t.Column(name) {
			if tabular.IsNull(v) {
				n++
			}
		}
		totalMissing += n
		qm.MissingByColumn[name] = MissingStat{Count: n, Percentage: pct(n, t.NumRows())}
	}
	if totalCells > 0 {
		qm.OverallCompleteness = 1 - float64(totalMissing)/float64(totalCells)
	}
	return qm
}
