package classify

import (
	"go.uber.org/zap"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
)

// =============================================================================
// HEURISTIC CLASSIFIER
// Rule-based fallback used whenever no trained model is available. Scores
// each semantic category from the fixed pattern sets: +2 per pattern hit on
// the entity name, +1 per pattern hit on each field name. The highest score
// wins; ties break by category declaration order.
// =============================================================================

// HeuristicClassifier is the rule-based classification strategy.
type HeuristicClassifier struct {
	logger *zap.Logger
}

// NewHeuristicClassifier creates the heuristic strategy. A nil logger is
// replaced with a no-op logger.
func NewHeuristicClassifier(logger *zap.Logger) *HeuristicClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeuristicClassifier{logger: logger}
}

// Classify scores the descriptor against every category.
// Confidence is min(score/10, 1.0); no pattern hit at all yields "unknown"
// with zero confidence. A descriptor without fields is treated as malformed
// and degrades the same way.
func (c *HeuristicClassifier) Classify(sd schema.SchemaDescriptor) Prediction {
	if len(sd.Fields) == 0 {
		c.logger.Warn("schema descriptor has no fields; classifying as unknown",
			zap.String("entity", sd.Name))
		return unknownPrediction(sd.Name)
	}

	bestIdx := -1
	bestScore := 0
	for i, cat := range schema.Categories {
		score := 2 * schema.CategoryNameMatches(cat, sd.Name)
		for _, f := range sd.Fields {
			score += schema.CategoryFieldMatches(cat, f.Name)
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return unknownPrediction(sd.Name)
	}

	return Prediction{
		EntityName:    sd.Name,
		PredictedType: entityOrder[bestIdx],
		Confidence:    clamp01(float64(bestScore) / 10.0),
	}
}

var _ Strategy = (*HeuristicClassifier)(nil)
