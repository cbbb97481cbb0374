package profile

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"gonum.org/v1/gonum/stat"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

// =============================================================================
// PER-COLUMN PROFILING
// Each builder consumes the raw cell slice of one column and fills the
// matching sub-profile. Degenerate inputs (single row, constant column) must
// never propagate NaN into the result.
// =============================================================================

// categoricalUniqueRatio is the unique-ratio bound under which a text column
// is profiled as categorical.
const categoricalUniqueRatio = 0.1

const topValueCount = 10

func profileColumn(name string, values []any) *ColumnProfile {
	cp := &ColumnProfile{Name: name}
	for _, v := range values {
		if tabular.IsNull(v) {
			cp.Missing++
		}
	}
	cp.Count = len(values) - cp.Missing
	if len(values) > 0 {
		cp.MissingPct = pct(cp.Missing, len(values))
	}

	switch tabular.DetectKind(values) {
	case tabular.KindEmpty:
		cp.Kind = KindEmpty
	case tabular.KindBoolean:
		cp.Kind = KindBoolean
		cp.Boolean = profileBoolean(values)
	case tabular.KindNumeric:
		cp.Kind = KindNumeric
		cp.Numeric = profileNumeric(values)
	case tabular.KindDatetime:
		cp.Kind = KindDatetime
		cp.Datetime = profileDatetime(values)
	default:
		texts := textValues(values)
		if isCategorical(texts) {
			cp.Kind = KindCategorical
			cp.Categorical = profileCategorical(texts)
		} else {
			cp.Kind = KindText
			cp.Text = profileText(texts)
		}
	}
	return cp
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// -------------------- numeric --------------------

func numericValues(values []any) []float64 {
	var out []float64
	for _, v := range values {
		if f, ok := tabular.AsFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func profileNumeric(values []any) *NumericProfile {
	xs := numericValues(values)
	if len(xs) == 0 {
		return &NumericProfile{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	np := &NumericProfile{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(xs, nil),
		Median: quantile(sorted, 0.5),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
		P5:     quantile(sorted, 0.05),
		P95:    quantile(sorted, 0.95),
		P99:    quantile(sorted, 0.99),
	}

	// Sample moments are undefined below two (resp. constant) observations;
	// report zero instead of NaN.
	if len(xs) >= 2 {
		np.Variance = stat.Variance(xs, nil)
		np.Std = math.Sqrt(np.Variance)
	}
	if np.Std > 0 {
		np.Skewness = zeroIfNaN(stat.Skew(xs, nil))
		np.Kurtosis = zeroIfNaN(stat.ExKurtosis(xs, nil))
	}

	iqr := np.Q3 - np.Q1
	np.OutlierLow = np.Q1 - 1.5*iqr
	np.OutlierHigh = np.Q3 + 1.5*iqr
	for _, x := range xs {
		if x < np.OutlierLow || x > np.OutlierHigh {
			np.OutlierCount++
		}
	}

	np.IsInteger = true
	for _, x := range xs {
		if x != math.Trunc(x) {
			np.IsInteger = false
			break
		}
	}
	return np
}

func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// -------------------- text --------------------

// textValues keeps every non-null cell as a string, including empty and
// whitespace-only values: the text profile counts those explicitly.
func textValues(values []any) []string {
	var out []string
	for _, v := range values {
		if tabular.IsNull(v) {
			continue
		}
		out = append(out, tabular.AsString(v))
	}
	return out
}

var shapePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"email", regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)},
	{"phone", regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{6,}$`)},
	{"url", regexp.MustCompile(`^https?://[^\s]+$`)},
	{"numeric_only", regexp.MustCompile(`^[0-9]+$`)},
	{"alpha_only", regexp.MustCompile(`^[A-Za-z]+$`)},
	{"alphanumeric", regexp.MustCompile(`^[A-Za-z0-9]+$`)},
	{"has_special_chars", regexp.MustCompile(`[^A-Za-z0-9\s]`)},
	{"all_uppercase", regexp.MustCompile(`^[^a-z]*[A-Z][^a-z]*$`)},
	{"all_lowercase", regexp.MustCompile(`^[^A-Z]*[a-z][^A-Z]*$`)},
	{"title_case", regexp.MustCompile(`^([A-Z][a-z]*)(\s+[A-Z][a-z]*)*$`)},
}

func profileText(texts []string) *TextProfile {
	tp := &TextProfile{}
	if len(texts) == 0 {
		return tp
	}

	tp.MinLength = len(texts[0])
	totalLen := 0
	counts := make(map[string]int)
	for _, s := range texts {
		n := len(s)
		totalLen += n
		if n < tp.MinLength {
			tp.MinLength = n
		}
		if n > tp.MaxLength {
			tp.MaxLength = n
		}
		if s == "" {
			tp.EmptyCount++
		} else if strings.TrimSpace(s) == "" {
			tp.WhitespaceCount++
		}
		counts[s]++
		for _, r := range s {
			switch {
			case unicode.IsLetter(r):
				tp.Charset.Letters++
			case unicode.IsDigit(r):
				tp.Charset.Digits++
			case unicode.IsSpace(r):
				tp.Charset.Spaces++
			default:
				tp.Charset.Special++
			}
		}
	}
	tp.MeanLength = float64(totalLen) / float64(len(texts))
	tp.TopValues = topValues(counts, topValueCount)

	for _, sp := range shapePatterns {
		n := 0
		for _, s := range texts {
			if s != "" && sp.re.MatchString(s) {
				n++
			}
		}
		if n > 0 {
			tp.Patterns = append(tp.Patterns, PatternStat{
				Pattern:    sp.name,
				Count:      n,
				Percentage: pct(n, len(texts)),
			})
		}
	}
	return tp
}

// topValues ranks a frequency map by count descending, value ascending.
func topValues(counts map[string]int, limit int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// -------------------- categorical --------------------

func isCategorical(texts []string) bool {
	meaningful := 0
	distinct := make(map[string]struct{})
	for _, s := range texts {
		if strings.TrimSpace(s) == "" {
			continue
		}
		meaningful++
		distinct[s] = struct{}{}
	}
	if meaningful == 0 {
		return false
	}
	return float64(len(distinct))/float64(meaningful) < categoricalUniqueRatio
}

func profileCategorical(texts []string) *CategoricalProfile {
	counts := make(map[string]int)
	for _, s := range texts {
		if strings.TrimSpace(s) == "" {
			continue
		}
		counts[s]++
	}
	freq := topValues(counts, len(counts))
	cat := &CategoricalProfile{
		UniqueCount: len(counts),
		Frequencies: freq,
	}
	if len(freq) > 0 {
		cat.Mode = freq[0].Value
		cat.ModeCount = freq[0].Count
	}
	return cat
}

// -------------------- datetime --------------------

func profileDatetime(values []any) *DatetimeProfile {
	var ts []time.Time
	for _, v := range values {
		if t, ok := tabular.AsTime(v); ok {
			ts = append(ts, t)
		}
	}
	dp := &DatetimeProfile{}
	if len(ts) == 0 {
		return dp
	}

	dp.Min, dp.Max = ts[0], ts[0]
	years := make(map[int]int)
	months := make(map[int]int)
	weekdays := make(map[time.Weekday]int)
	dates := make(map[string]int)
	for _, t := range ts {
		if t.Before(dp.Min) {
			dp.Min = t
		}
		if t.After(dp.Max) {
			dp.Max = t
		}
		years[t.Year()]++
		months[int(t.Month())]++
		weekdays[t.Weekday()]++
		dates[t.Format("2006-01-02")]++
		h, m, s := t.Clock()
		if h != 0 || m != 0 || s != 0 {
			dp.HasTimeComponent = true
		}
	}
	dp.SpanDays = int(dp.Max.Sub(dp.Min).Hours() / 24)
	dp.CommonYear = commonIntKey(years)
	dp.CommonMonth = commonIntKey(months)
	dp.CommonWeekday = commonWeekday(weekdays)
	dp.DuplicateDateRatio = 1 - float64(len(dates))/float64(len(ts))
	return dp
}

// commonIntKey picks the most frequent key; ties break to the smaller key so
// the result is deterministic.
func commonIntKey(counts map[int]int) int {
	best, bestCount := 0, -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}

func commonWeekday(counts map[time.Weekday]int) string {
	best, bestCount := time.Sunday, -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best.String()
}

// -------------------- boolean --------------------

func profileBoolean(values []any) *BooleanProfile {
	bp := &BooleanProfile{}
	total := 0
	for _, v := range values {
		b, ok := tabular.AsBool(v)
		if !ok {
			continue
		}
		total++
		if b {
			bp.TrueCount++
		} else {
			bp.FalseCount++
		}
	}
	if total > 0 {
		bp.TruePct = pct(bp.TrueCount, total)
		bp.FalsePct = pct(bp.FalseCount, total)
	}
	return bp
}
