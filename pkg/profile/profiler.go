package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

// DefaultSeed feeds the deterministic row sampler.
const DefaultSeed = 42

// Options tunes a Profiler. A RowCap of zero disables sampling.
type Options struct {
	RowCap int
	Seed   int64 // default DefaultSeed
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Profiler computes DatasetProfiles. It holds no mutable state; one Profiler
// may serve concurrent Profile calls.
type Profiler struct {
	opts   Options
	logger *zap.Logger
}

// NewProfiler builds a profiler. A nil logger is replaced with a no-op
// logger.
func NewProfiler(opts Options, logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{opts: opts.withDefaults(), logger: logger}
}

// Profile computes the full per-column and dataset-level profile of a sample.
// The row cap, when set, is applied before the expensive dataset analyses so
// worst-case latency stays proportional to the cap. Only a nil table is an
// error; degenerate columns profile to safe defaults.
func (p *Profiler) Profile(t *tabular.Table) (*DatasetProfile, error) {
	if t == nil {
		return nil, errors.New("profile: nil table")
	}

	sampled, info := t.Sample(p.opts.RowCap, p.opts.Seed)
	if info.Sampled {
		p.logger.Info("row cap applied before profiling",
			zap.Int("original_rows", info.OriginalRows),
			zap.Int("sampled_rows", info.SampledRows),
			zap.Int64("seed", info.Seed))
	}

	dp := &DatasetProfile{
		DatasetInfo: DatasetInfo{
			ProfileID:   uuid.NewString(),
			Dataset:     t.Name,
			Rows:        sampled.NumRows(),
			Columns:     sampled.NumColumns(),
			Sampling:    info,
			GeneratedAt: time.Now().UTC(),
		},
		Columns: make(map[string]*ColumnProfile, sampled.NumColumns()),
	}

	for _, name := range sampled.Columns {
		dp.Columns[name] = profileColumn(name, sampled.Column(name))
	}

	dp.Patterns = analyzeNamingConventions(sampled.Columns)
	dp.Patterns.Downcasts = suggestDowncasts(sampled.Columns, dp.Columns)
	dp.Relationships = Relationships{
		Correlations:     findCorrelations(sampled, dp.Columns),
		DuplicateColumns: findDuplicateColumns(sampled),
		CandidateKeys:    findCandidateKeys(sampled),
	}
	dp.QualityMetrics = missingSummary(sampled)
	dp.Recommendations = recommendations(dp)
	return dp, nil
}

// completenessFloor is the completeness level below which a recommendation
// fires.
const completenessFloor = 0.9

// recommendations renders the fixed threshold rules into free-text advice.
func recommendations(dp *DatasetProfile) []string {
	var out []string
	if dp.DatasetInfo.Rows == 0 {
		return []string{"Dataset is empty"}
	}
	if dp.QualityMetrics.OverallCompleteness < completenessFloor {
		out = append(out, fmt.Sprintf(
			"Overall completeness is %.1f%%; investigate missing data before migration",
			dp.QualityMetrics.OverallCompleteness*100))
	}
	if n := len(dp.Patterns.Downcasts); n > 0 {
		out = append(out, fmt.Sprintf(
			"%d numeric column(s) can use narrower types; apply the suggested downcasts to reduce storage", n))
	}
	if n := len(dp.Relationships.DuplicateColumns); n > 0 {
		out = append(out, fmt.Sprintf(
			"%d duplicate column pair(s) found; consider dropping the redundant columns", n))
	}
	if n := len(dp.Relationships.Correlations); n > 0 {
		out = append(out, fmt.Sprintf(
			"%d highly correlated numeric pair(s) (|r| > %.1f); review for redundancy",
			n, correlationThreshold))
	}
	return out
}
