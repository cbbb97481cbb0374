// Package quality scores a tabular sample across five dimensions —
// completeness, consistency, accuracy, validity, uniqueness — and detects
// numeric anomalies separately. The overall score is always the exact
// unweighted mean of the five sub-scores; an empty dataset scores zero.
package quality

import "time"

// Dimension names used in issues and recommendations.
const (
	DimCompleteness = "completeness"
	DimConsistency  = "consistency"
	DimAccuracy     = "accuracy"
	DimValidity     = "validity"
	DimUniqueness   = "uniqueness"
)

// DimensionScore is one sub-score in [0, 1] with an optional explanation.
type DimensionScore struct {
	Score  float64 `json:"score"`
	Detail string  `json:"detail,omitempty"`
}

// Issue pins a quality finding to a dimension and, when applicable, a column.
type Issue struct {
	Dimension   string `json:"dimension"`
	Column      string `json:"column,omitempty"`
	Description string `json:"description"`
}

// AnomalyReport summarizes isolation-forest findings over the numeric
// columns. It is informational and never folded into the overall score.
type AnomalyReport struct {
	Evaluated  bool    `json:"evaluated"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	RowIndexes []int   `json:"row_indexes,omitempty"`
}

// Report is the complete quality assessment of one sample.
type Report struct {
	ReportID        string         `json:"report_id"`
	Dataset         string         `json:"dataset"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Completeness    DimensionScore `json:"completeness"`
	Consistency     DimensionScore `json:"consistency"`
	Accuracy        DimensionScore `json:"accuracy"`
	Validity        DimensionScore `json:"validity"`
	Uniqueness      DimensionScore `json:"uniqueness"`
	OverallScore    float64        `json:"overall_score"`
	Issues          []Issue        `json:"issues"`
	Recommendations []string       `json:"recommendations"`
	Anomalies       AnomalyReport  `json:"anomalies"`
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
