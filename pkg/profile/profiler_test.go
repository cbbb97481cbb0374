package profile

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

func mixedTable(t *testing.T, rows int) *tabular.Table {
	t.Helper()
	records := make([]tabular.Record, rows)
	statuses := []string{"active", "inactive", "pending"}
	for i := range records {
		records[i] = tabular.Record{
			"user_id":    i + 1,
			"amount":     float64(i) * 1.5,
			"amount_2":   float64(i) * 3.0,
			"status":     statuses[i%len(statuses)],
			"email":      fmt.Sprintf("user%d@example.com", i),
			"created_at": fmt.Sprintf("2024-01-%02d", i%27+1),
			"is_active":  i%2 == 0,
		}
	}
	tbl, err := tabular.New("users", []string{
		"user_id", "amount", "amount_2", "status", "email", "created_at", "is_active",
	}, records)
	require.NoError(t, err)
	return tbl
}

func TestProfileIdempotent(t *testing.T) {
	p := NewProfiler(Options{RowCap: 30}, nil)
	tbl := mixedTable(t, 100)

	p1, err := p.Profile(tbl)
	require.NoError(t, err)
	p2, err := p.Profile(tbl)
	require.NoError(t, err)

	diff := cmp.Diff(p1, p2,
		cmpopts.IgnoreFields(DatasetInfo{}, "ProfileID", "GeneratedAt"))
	assert.Empty(t, diff)
	assert.True(t, p1.DatasetInfo.Sampling.Sampled)
	assert.Equal(t, 30, p1.DatasetInfo.Rows)
}

func TestProfileSingleRowNoNaN(t *testing.T) {
	tbl, err := tabular.New("one", []string{"x"}, []tabular.Record{{"x": 5.0}})
	require.NoError(t, err)

	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)

	cp := dp.Columns["x"]
	require.NotNil(t, cp)
	require.Equal(t, KindNumeric, cp.Kind)
	np := cp.Numeric
	require.NotNil(t, np)
	for name, v := range map[string]float64{
		"mean": np.Mean, "median": np.Median, "std": np.Std,
		"variance": np.Variance, "skewness": np.Skewness, "kurtosis": np.Kurtosis,
		"q1": np.Q1, "q3": np.Q3, "p99": np.P99,
	} {
		assert.False(t, math.IsNaN(v), "%s is NaN", name)
	}
	assert.Equal(t, 5.0, np.Min)
	assert.Equal(t, 5.0, np.Max)
	assert.Zero(t, np.Std)
}

func TestNumericProfileOutliers(t *testing.T) {
	records := []tabular.Record{}
	for i := 0; i < 20; i++ {
		records = append(records, tabular.Record{"v": 10.0 + float64(i%3)})
	}
	records = append(records, tabular.Record{"v": 500.0})
	tbl, err := tabular.New("t", []string{"v"}, records)
	require.NoError(t, err)

	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)
	np := dp.Columns["v"].Numeric
	require.NotNil(t, np)
	assert.Equal(t, 1, np.OutlierCount)
	assert.True(t, np.IsInteger)
}

func TestTextProfilePatternsAndTopValues(t *testing.T) {
	records := []tabular.Record{
		{"contact": "alice@example.com"},
		{"contact": "bob@example.com"},
		{"contact": "not-an-email"},
		{"contact": "alice@example.com"},
		{"contact": ""},
	}
	tbl, err := tabular.New("t", []string{"contact"}, records)
	require.NoError(t, err)

	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)
	tp := dp.Columns["contact"].Text
	require.NotNil(t, tp)
	assert.Equal(t, 1, tp.EmptyCount)
	require.NotEmpty(t, tp.TopValues)
	assert.Equal(t, "alice@example.com", tp.TopValues[0].Value)
	assert.Equal(t, 2, tp.TopValues[0].Count)

	var email *PatternStat
	for i := range tp.Patterns {
		if tp.Patterns[i].Pattern == "email" {
			email = &tp.Patterns[i]
		}
	}
	require.NotNil(t, email)
	assert.Equal(t, 3, email.Count)
}

func TestCategoricalDetection(t *testing.T) {
	records := make([]tabular.Record, 100)
	for i := range records {
		records[i] = tabular.Record{"tier": []string{"gold", "silver"}[i%2]}
	}
	tbl, err := tabular.New("t", []string{"tier"}, records)
	require.NoError(t, err)

	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)
	cp := dp.Columns["tier"]
	require.Equal(t, KindCategorical, cp.Kind)
	require.NotNil(t, cp.Categorical)
	assert.Equal(t, 2, cp.Categorical.UniqueCount)
	assert.Equal(t, "gold", cp.Categorical.Mode)
}

func TestDatasetAnalysis(t *testing.T) {
	tbl := mixedTable(t, 60)
	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)

	// user_id, amount and amount_2 are all perfectly linear in the row index,
	// so every numeric pair is reported, in column order.
	require.Len(t, dp.Relationships.Correlations, 3)
	assert.Equal(t, "user_id", dp.Relationships.Correlations[0].ColumnA)
	assert.Equal(t, "amount", dp.Relationships.Correlations[0].ColumnB)
	last := dp.Relationships.Correlations[2]
	assert.Equal(t, "amount", last.ColumnA)
	assert.Equal(t, "amount_2", last.ColumnB)
	assert.InDelta(t, 1.0, last.Coefficient, 1e-9)

	assert.Contains(t, dp.Relationships.CandidateKeys, "user_id")
	assert.Contains(t, dp.Relationships.CandidateKeys, "email")

	assert.Equal(t, "snake_case", dp.Patterns.DominantConvention)
	assert.Equal(t, 1.0, dp.Patterns.ConsistencyRatio)

	assert.Equal(t, 1.0, dp.QualityMetrics.OverallCompleteness)
}

func TestDuplicateColumnsAndRecommendations(t *testing.T) {
	records := make([]tabular.Record, 10)
	for i := range records {
		records[i] = tabular.Record{"a": i, "b": i, "note": nil}
	}
	tbl, err := tabular.New("t", []string{"a", "b", "note"}, records)
	require.NoError(t, err)

	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)

	require.Len(t, dp.Relationships.DuplicateColumns, 1)
	assert.Equal(t, DuplicatePair{ColumnA: "a", ColumnB: "b"}, dp.Relationships.DuplicateColumns[0])

	// note is entirely null: completeness 2/3 < 0.9 triggers a recommendation.
	assert.Less(t, dp.QualityMetrics.OverallCompleteness, 0.9)
	assert.NotEmpty(t, dp.Recommendations)
}

func TestDowncastSuggestions(t *testing.T) {
	records := make([]tabular.Record, 12)
	for i := range records {
		records[i] = tabular.Record{"small": i, "wide": 1e40 * float64(i+1)}
	}
	tbl, err := tabular.New("t", []string{"small", "wide"}, records)
	require.NoError(t, err)

	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)

	var cols []string
	for _, d := range dp.Patterns.Downcasts {
		cols = append(cols, d.Column)
	}
	assert.Contains(t, cols, "small")
	assert.NotContains(t, cols, "wide")
	for _, d := range dp.Patterns.Downcasts {
		if d.Column == "small" {
			assert.Equal(t, "int8", d.Suggested)
			assert.NotEmpty(t, d.Reason)
		}
	}
}

func TestProfileEmptyTable(t *testing.T) {
	tbl, err := tabular.New("empty", []string{"a"}, nil)
	require.NoError(t, err)
	dp, err := NewProfiler(Options{}, nil).Profile(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dataset is empty"}, dp.Recommendations)
	assert.Equal(t, KindEmpty, dp.Columns["a"].Kind)
}

func TestProfileNilTable(t *testing.T) {
	_, err := NewProfiler(Options{}, nil).Profile(nil)
	assert.Error(t, err)
}
