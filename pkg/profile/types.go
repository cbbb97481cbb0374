// Package profile computes per-column and dataset-level statistical profiles
// over an in-memory tabular sample. Profiling is synchronous, side-effect
// free and deterministic: the same sample, row cap and seed always yield the
// same profile.
package profile

import (
	"time"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

// Kind is the profile branch taken for a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindText        Kind = "text"
	KindDatetime    Kind = "datetime"
	KindBoolean     Kind = "boolean"
	KindCategorical Kind = "categorical"
	KindEmpty       Kind = "empty"
)

// ColumnProfile is a tagged union: Kind selects which sub-profile is set.
type ColumnProfile struct {
	Name        string              `json:"name"`
	Kind        Kind                `json:"kind"`
	Count       int                 `json:"count"`
	Missing     int                 `json:"missing"`
	MissingPct  float64             `json:"missing_pct"`
	Numeric     *NumericProfile     `json:"numeric,omitempty"`
	Text        *TextProfile        `json:"text,omitempty"`
	Datetime    *DatetimeProfile    `json:"datetime,omitempty"`
	Boolean     *BooleanProfile     `json:"boolean,omitempty"`
	Categorical *CategoricalProfile `json:"categorical,omitempty"`
}

// NumericProfile carries distribution statistics of a numeric column.
type NumericProfile struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Std          float64 `json:"std"`
	Variance     float64 `json:"variance"`
	Skewness     float64 `json:"skewness"`
	Kurtosis     float64 `json:"kurtosis"`
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
	P5           float64 `json:"p5"`
	P95          float64 `json:"p95"`
	P99          float64 `json:"p99"`
	OutlierLow   float64 `json:"outlier_low"`
	OutlierHigh  float64 `json:"outlier_high"`
	OutlierCount int     `json:"outlier_count"`
	IsInteger    bool    `json:"is_integer"`
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PatternStat reports how many values of a text column exhibit a shape.
type PatternStat struct {
	Pattern    string  `json:"pattern"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CharsetSummary counts character classes across all values of a text column.
type CharsetSummary struct {
	Letters int `json:"letters"`
	Digits  int `json:"digits"`
	Spaces  int `json:"spaces"`
	Special int `json:"special"`
}

// TextProfile carries shape and length statistics of a text column.
type TextProfile struct {
	MinLength       int            `json:"min_length"`
	MaxLength       int            `json:"max_length"`
	MeanLength      float64        `json:"mean_length"`
	EmptyCount      int            `json:"empty_count"`
	WhitespaceCount int            `json:"whitespace_count"`
	TopValues       []ValueCount   `json:"top_values"`
	Patterns        []PatternStat  `json:"patterns,omitempty"`
	Charset         CharsetSummary `json:"charset"`
}

// DatetimeProfile carries range and calendar statistics of a datetime column.
type DatetimeProfile struct {
	Min                time.Time `json:"min"`
	Max                time.Time `json:"max"`
	SpanDays           int       `json:"span_days"`
	CommonYear         int       `json:"common_year"`
	CommonMonth        int       `json:"common_month"`
	CommonWeekday      string    `json:"common_weekday"`
	HasTimeComponent   bool      `json:"has_time_component"`
	DuplicateDateRatio float64   `json:"duplicate_date_ratio"`
}

// BooleanProfile carries truth-value counts of a boolean column.
type BooleanProfile struct {
	TrueCount  int     `json:"true_count"`
	FalseCount int     `json:"false_count"`
	TruePct    float64 `json:"true_pct"`
	FalsePct   float64 `json:"false_pct"`
}

// CategoricalProfile carries the frequency table of a low-cardinality column.
type CategoricalProfile struct {
	UniqueCount int          `json:"unique_count"`
	Frequencies []ValueCount `json:"frequencies"`
	Mode        string       `json:"mode"`
	ModeCount   int          `json:"mode_count"`
}

// DatasetInfo identifies a profiling run.
type DatasetInfo struct {
	ProfileID   string             `json:"profile_id"`
	Dataset     string             `json:"dataset"`
	Rows        int                `json:"rows"`
	Columns     int                `json:"columns"`
	Sampling    tabular.SampleInfo `json:"sampling"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Correlation is a reported linear relationship between two numeric columns.
type Correlation struct {
	ColumnA     string  `json:"column_a"`
	ColumnB     string  `json:"column_b"`
	Coefficient float64 `json:"coefficient"`
}

// DuplicatePair names two columns with exactly equal values.
type DuplicatePair struct {
	ColumnA string `json:"column_a"`
	ColumnB string `json:"column_b"`
}

// Relationships aggregates cross-column findings.
type Relationships struct {
	Correlations     []Correlation   `json:"correlations,omitempty"`
	DuplicateColumns []DuplicatePair `json:"duplicate_columns,omitempty"`
	CandidateKeys    []string        `json:"candidate_keys,omitempty"`
}

// Downcast is a storage-narrowing suggestion for a numeric column.
type Downcast struct {
	Column    string `json:"column"`
	Current   string `json:"current"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
}

// Patterns aggregates structural findings about the dataset.
type Patterns struct {
	NamingConventions  map[string]string `json:"naming_conventions"`
	DominantConvention string            `json:"dominant_convention"`
	ConsistencyRatio   float64           `json:"consistency_ratio"`
	Downcasts          []Downcast        `json:"downcasts,omitempty"`
}

// MissingStat summarizes missing data for one column.
type MissingStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QualityMetrics is the profiler's lightweight data-quality summary; the full
// five-dimension assessment lives in the quality package.
type QualityMetrics struct {
	OverallCompleteness float64                `json:"overall_completeness"`
	MissingByColumn     map[string]MissingStat `json:"missing_by_column"`
}

// DatasetProfile is the complete profiling result.
type DatasetProfile struct {
	DatasetInfo     DatasetInfo               `json:"dataset_info"`
	Columns         map[string]*ColumnProfile `json:"columns"`
	Relationships   Relationships             `json:"relationships"`
	Patterns        Patterns                  `json:"patterns"`
	QualityMetrics  QualityMetrics            `json:"quality_metrics"`
	Recommendations []string                  `json:"recommendations"`
}
