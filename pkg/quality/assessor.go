package quality

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

// Fixed per-column penalty constants. These mirror the documented behavior
// of the original scoring engine and are deliberately not proportional to the
// affected-row fraction.
const (
	consistencyPenalty = 0.1
	accuracyPenalty    = 0.05
	validityPenalty    = 0.1
	uniquenessPenalty  = 0.1

	highCardinalityDistinct = 10
	highCardinalityRatio    = 0.5

	recommendationFloor = 0.9
	anomalyAlertPct     = 5.0
)

// Options tunes an Assessor. Zero values select the defaults.
type Options struct {
	Contamination float64 // default 0.10
	Seed          int64   // default 42
	MinRowsForIF  int     // default 8
}

func (o Options) withDefaults() Options {
	if o.Contamination <= 0 || o.Contamination >= 1 {
		o.Contamination = 0.10
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.MinRowsForIF <= 0 {
		o.MinRowsForIF = 8
	}
	return o
}

// Assessor scores tabular samples. It holds no mutable state; one Assessor
// may serve concurrent Assess calls.
type Assessor struct {
	opts   Options
	logger *zap.Logger
}

// NewAssessor builds an assessor. A nil logger is replaced with a no-op
// logger.
func NewAssessor(opts Options, logger *zap.Logger) *Assessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessor{opts: opts.withDefaults(), logger: logger}
}

// Assess computes the five-dimension quality report for a sample. Only a nil
// table is an error; every sub-check degrades to a safe default when it has
// nothing to evaluate, and no sub-check failure aborts the run.
func (a *Assessor) Assess(t *tabular.Table) (*Report, error) {
	if t == nil {
		return nil, errors.New("quality: nil table")
	}

	r := &Report{
		ReportID:    uuid.NewString(),
		Dataset:     t.Name,
		GeneratedAt: time.Now().UTC(),
	}

	if t.IsEmpty() {
		r.Recommendations = []string{"Dataset is empty"}
		return r, nil
	}

	kinds := make(map[string]tabular.Kind, len(t.Columns))
	for _, name := range t.Columns {
		kinds[name] = tabular.DetectKind(t.Column(name))
	}

	r.Completeness = a.scoreCompleteness(t, r)
	r.Consistency = a.scoreConsistency(t, kinds, r)
	r.Accuracy = a.scoreAccuracy(t, kinds, r)
	r.Validity = a.scoreValidity(t, kinds, r)
	r.Uniqueness = a.scoreUniqueness(t, r)

	r.OverallScore = (r.Completeness.Score + r.Consistency.Score + r.Accuracy.Score +
		r.Validity.Score + r.Uniqueness.Score) / 5

	r.Anomalies = a.detectAnomalies(t, kinds)
	r.Recommendations = a.recommendations(r)
	return r, nil
}

// -------------------- completeness --------------------

func (a *Assessor) scoreCompleteness(t *tabular.Table, r *Report) DimensionScore {
	total := t.NumRows() * t.NumColumns()
	missing := 0
	for _, name := range t.Columns {
		n := 0
		for _, v := range t.Column(name) {
			if tabular.IsNull(v) {
				n++
			}
		}
		if n > 0 {
			r.Issues = append(r.Issues, Issue{
				Dimension:   DimCompleteness,
				Column:      name,
				Description: fmt.Sprintf("%d of %d values missing", n, t.NumRows()),
			})
		}
		missing += n
	}
	score := 1 - float64(missing)/float64(total)
	return DimensionScore{
		Score:  clamp01(score),
		Detail: fmt.Sprintf("%d of %d cells populated", total-missing, total),
	}
}

// -------------------- consistency --------------------

// scoreConsistency groups text values by their lowercase form; a column where
// one lowercase group holds several distinct casings is inconsistent.
func (a *Assessor) scoreConsistency(t *tabular.Table, kinds map[string]tabular.Kind, r *Report) DimensionScore {
	score := 1.0
	evaluated := false
	for _, name := range t.Columns {
		if kinds[name] != tabular.KindText {
			continue
		}
		evaluated = true
		groups := make(map[string]map[string]struct{})
		for _, v := range t.Column(name) {
			if tabular.IsBlank(v) {
				continue
			}
			s := tabular.AsString(v)
			key := strings.ToLower(s)
			if groups[key] == nil {
				groups[key] = make(map[string]struct{})
			}
			groups[key][s] = struct{}{}
		}
		collisions := 0
		for _, variants := range groups {
			if len(variants) > 1 {
				collisions++
			}
		}
		if collisions > 0 {
			score -= consistencyPenalty
			r.Issues = append(r.Issues, Issue{
				Dimension:   DimConsistency,
				Column:      name,
				Description: fmt.Sprintf("%d value group(s) differ only by letter case", collisions),
			})
		}
	}
	if !evaluated {
		return DimensionScore{Score: 1, Detail: "no text columns to evaluate"}
	}
	return DimensionScore{Score: clamp01(score)}
}

// -------------------- accuracy --------------------

// scoreAccuracy flags numeric columns with values outside the 1.5×IQR fence.
func (a *Assessor) scoreAccuracy(t *tabular.Table, kinds map[string]tabular.Kind, r *Report) DimensionScore {
	score := 1.0
	evaluated := false
	for _, name := range t.Columns {
		if kinds[name] != tabular.KindNumeric {
			continue
		}
		evaluated = true
		var xs []float64
		for _, v := range t.Column(name) {
			if f, ok := tabular.AsFloat(v); ok {
				xs = append(xs, f)
			}
		}
		if len(xs) < 4 {
			continue // fence is meaningless on tiny columns
		}
		sorted := append([]float64(nil), xs...)
		sort.Float64s(sorted)
		q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
		q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
		iqr := q3 - q1
		lo, hi := q1-1.5*iqr, q3+1.5*iqr
		outliers := 0
		for _, x := range xs {
			if x < lo || x > hi {
				outliers++
			}
		}
		if outliers > 0 {
			score -= accuracyPenalty
			r.Issues = append(r.Issues, Issue{
				Dimension:   DimAccuracy,
				Column:      name,
				Description: fmt.Sprintf("%d value(s) outside the IQR fence [%g, %g]", outliers, lo, hi),
			})
		}
	}
	if !evaluated {
		return DimensionScore{Score: 1, Detail: "no numeric columns to evaluate"}
	}
	return DimensionScore{Score: clamp01(score)}
}

// -------------------- validity --------------------

var formatChecks = []struct {
	hint string
	re   *regexp.Regexp
}{
	{"email", regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)},
	{"phone", regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{6,}$`)},
	{"url", regexp.MustCompile(`^https?://[^\s]+$`)},
	{"ip", regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)},
}

// nameHint returns the format check suggested by a column name, or nil.
func nameHint(column string) *regexp.Regexp {
	lower := strings.ToLower(column)
	for _, fc := range formatChecks {
		if strings.Contains(lower, fc.hint) {
			return fc.re
		}
	}
	return nil
}

// scoreValidity applies name-hinted format checks to text columns, finiteness
// checks to numeric columns and non-empty checks to everything else.
func (a *Assessor) scoreValidity(t *tabular.Table, kinds map[string]tabular.Kind, r *Report) DimensionScore {
	score := 1.0
	for _, name := range t.Columns {
		col := t.Column(name)
		invalid := 0
		var reason string
		switch kinds[name] {
		case tabular.KindNumeric:
			for _, v := range col {
				if f, ok := tabular.AsFloat(v); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
					invalid++
				}
			}
			reason = "non-finite value(s)"
		case tabular.KindText:
			re := nameHint(name)
			if re != nil {
				for _, v := range col {
					if tabular.IsBlank(v) {
						continue
					}
					if !re.MatchString(tabular.AsString(v)) {
						invalid++
					}
				}
				reason = "value(s) fail the format implied by the column name"
				break
			}
			fallthrough
		default:
			for _, v := range col {
				if !tabular.IsNull(v) && tabular.IsBlank(v) {
					invalid++
				}
			}
			reason = "empty or whitespace-only value(s)"
		}
		if invalid > 0 {
			score -= validityPenalty
			r.Issues = append(r.Issues, Issue{
				Dimension:   DimValidity,
				Column:      name,
				Description: fmt.Sprintf("%d %s", invalid, reason),
			})
		}
	}
	return DimensionScore{Score: clamp01(score)}
}

// -------------------- uniqueness --------------------

// scoreUniqueness starts from the distinct-row ratio, then penalizes columns
// that look like identifiers (many distinct values) yet repeat heavily.
func (a *Assessor) scoreUniqueness(t *tabular.Table, r *Report) DimensionScore {
	rows := t.NumRows()
	fingerprints := make(map[string]struct{}, rows)
	var sb strings.Builder
	for _, rec := range t.Records {
		sb.Reset()
		for _, name := range t.Columns {
			sb.WriteString(tabular.AsString(rec[name]))
			sb.WriteByte(0x1f)
		}
		fingerprints[sb.String()] = struct{}{}
	}
	distinctRows := len(fingerprints)
	score := float64(distinctRows) / float64(rows)
	if dup := rows - distinctRows; dup > 0 {
		r.Issues = append(r.Issues, Issue{
			Dimension:   DimUniqueness,
			Description: fmt.Sprintf("%d duplicate row(s) of %d", dup, rows),
		})
	}

	for _, name := range t.Columns {
		distinct := make(map[string]struct{})
		total := 0
		for _, v := range t.Column(name) {
			if tabular.IsNull(v) {
				continue
			}
			total++
			distinct[tabular.AsString(v)] = struct{}{}
		}
		if total == 0 {
			continue
		}
		ratio := float64(len(distinct)) / float64(total)
		if len(distinct) > highCardinalityDistinct && ratio < highCardinalityRatio {
			score -= uniquenessPenalty
			r.Issues = append(r.Issues, Issue{
				Dimension:   DimUniqueness,
				Column:      name,
				Description: fmt.Sprintf("high-cardinality column repeats heavily (%d distinct over %d values)", len(distinct), total),
			})
		}
	}
	return DimensionScore{
		Score:  clamp01(score),
		Detail: fmt.Sprintf("%d distinct of %d rows", distinctRows, rows),
	}
}

// -------------------- anomalies --------------------

// detectAnomalies runs a seeded isolation forest over the numeric columns.
// Degenerate input yields an unevaluated report and the run continues.
func (a *Assessor) detectAnomalies(t *tabular.Table, kinds map[string]tabular.Kind) AnomalyReport {
	var numeric []string
	for _, name := range t.Columns {
		if kinds[name] == tabular.KindNumeric {
			numeric = append(numeric, name)
		}
	}
	if len(numeric) == 0 || t.NumRows() < a.opts.MinRowsForIF {
		a.logger.Warn("anomaly detection skipped",
			zap.Int("numeric_columns", len(numeric)),
			zap.Int("rows", t.NumRows()))
		return AnomalyReport{Evaluated: false}
	}

	// Mean-impute cells that fail to coerce so every row stays scoreable.
	matrix := make([][]float64, t.NumRows())
	for i := range matrix {
		matrix[i] = make([]float64, len(numeric))
	}
	for j, name := range numeric {
		col := t.Column(name)
		var sum float64
		var n int
		for _, v := range col {
			if f, ok := tabular.AsFloat(v); ok {
				sum += f
				n++
			}
		}
		mean := 0.0
		if n > 0 {
			mean = sum / float64(n)
		}
		for i, v := range col {
			if f, ok := tabular.AsFloat(v); ok {
				matrix[i][j] = f
			} else {
				matrix[i][j] = mean
			}
		}
	}

	scores := isolationScores(matrix, a.opts.Seed)
	flagged := flagAnomalies(scores, a.opts.Contamination)
	return AnomalyReport{
		Evaluated:  true,
		Count:      len(flagged),
		Percentage: float64(len(flagged)) / float64(t.NumRows()) * 100,
		RowIndexes: flagged,
	}
}

// -------------------- recommendations --------------------

func (a *Assessor) recommendations(r *Report) []string {
	var out []string
	add := func(d DimensionScore, text string) {
		if d.Score < recommendationFloor {
			out = append(out, text)
		}
	}
	add(r.Completeness, "Fill or explicitly mark missing values before migration")
	add(r.Consistency, "Normalize letter casing of categorical text values")
	add(r.Accuracy, "Review numeric outliers flagged by the IQR fence")
	add(r.Validity, "Fix values that fail their column format checks")
	add(r.Uniqueness, "Deduplicate rows and review repetitive identifier columns")
	if r.Anomalies.Evaluated && r.Anomalies.Percentage > anomalyAlertPct {
		out = append(out, fmt.Sprintf(
			"%.1f%% of rows look anomalous; investigate before trusting aggregates",
			r.Anomalies.Percentage))
	}
	return out
}
