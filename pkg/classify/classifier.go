package classify

import (
	"go.uber.org/zap"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
)

// =============================================================================
// CLASSIFIER FACADE
// Selects the strategy by presence of a trained model handle. Both strategies
// satisfy the identical output contract.
// =============================================================================

// ForestClassifier is the model-based classification strategy.
type ForestClassifier struct {
	model  *Model
	logger *zap.Logger
}

// NewForestClassifier wraps a trained model. The model is read-only from here
// on; concurrent Classify calls are safe.
func NewForestClassifier(m *Model, logger *zap.Logger) *ForestClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForestClassifier{model: m, logger: logger}
}

// Classify extracts features, standardizes them with the fit-time scaler and
// averages the tree votes. Confidence is the maximum class probability; the
// returned probability map sums to 1.
func (c *ForestClassifier) Classify(sd schema.SchemaDescriptor) Prediction {
	if len(sd.Fields) == 0 {
		c.logger.Warn("schema descriptor has no fields; classifying as unknown",
			zap.String("entity", sd.Name))
		return unknownPrediction(sd.Name)
	}

	probs := c.model.predict(schema.ExtractFeatureRow(sd))

	best := 0
	for j := range probs {
		if probs[j] > probs[best] {
			best = j
		}
	}
	probabilities := make(map[string]float64, len(probs))
	for j, cls := range c.model.Classes {
		probabilities[string(cls)] = probs[j]
	}
	return Prediction{
		EntityName:    sd.Name,
		PredictedType: c.model.Classes[best],
		Confidence:    clamp01(probs[best]),
		Probabilities: probabilities,
	}
}

var _ Strategy = (*ForestClassifier)(nil)

// Classifier routes classification to the trained strategy when a model
// handle is present, and to the heuristic fallback otherwise.
type Classifier struct {
	strategy Strategy
	trained  bool
}

// New builds a classifier. A nil model selects the heuristic fallback and
// logs a warning, matching the model-unavailable contract.
func New(model *Model, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == nil {
		logger.Warn("no trained model supplied; using heuristic classification")
		return &Classifier{strategy: NewHeuristicClassifier(logger)}
	}
	return &Classifier{strategy: NewForestClassifier(model, logger), trained: true}
}

// Trained reports whether the model-based strategy is active.
func (c *Classifier) Trained() bool { return c.trained }

// Classify classifies one descriptor.
func (c *Classifier) Classify(sd schema.SchemaDescriptor) Prediction {
	return c.strategy.Classify(sd)
}

// ClassifyAll classifies every descriptor, one fresh Prediction per entity.
func (c *Classifier) ClassifyAll(schemas []schema.SchemaDescriptor) []Prediction {
	out := make([]Prediction, len(schemas))
	for i, sd := range schemas {
		out[i] = c.strategy.Classify(sd)
	}
	return out
}

var _ Strategy = (*Classifier)(nil)
