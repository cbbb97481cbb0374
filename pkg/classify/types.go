// Package classify assigns semantic entity types to schema descriptors. Two
// interchangeable strategies satisfy the same contract: a rule-based
// heuristic and a trained bagged decision-tree ensemble. Selection happens by
// presence of a trained model handle; neither strategy ever errors on
// malformed input — they degrade to "unknown" with zero confidence.
package classify

import "github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"

// EntityType is the semantic class of a source entity.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityProduct      EntityType = "product"
	EntityTransaction  EntityType = "transaction"
	EntityLocation     EntityType = "location"
	EntityTemporal     EntityType = "temporal"
	EntityUnknown      EntityType = "unknown"
)

// entityOrder fixes the tie-break and class ordering. It mirrors
// schema.Categories.
var entityOrder = []EntityType{
	EntityPerson,
	EntityOrganization,
	EntityProduct,
	EntityTransaction,
	EntityLocation,
	EntityTemporal,
}

// orderIndex returns the declaration rank of a type, or len(entityOrder) for
// unknown types.
func orderIndex(t EntityType) int {
	for i, e := range entityOrder {
		if e == t {
			return i
		}
	}
	return len(entityOrder)
}

// Prediction is the classification result for one entity. Probabilities is
// populated (and sums to 1) only on the model-based path.
type Prediction struct {
	EntityName    string             `json:"entity_name"`
	PredictedType EntityType         `json:"predicted_type"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

// Strategy classifies a single schema descriptor. Implementations must not
// return errors or panic on malformed descriptors.
type Strategy interface {
	Classify(sd schema.SchemaDescriptor) Prediction
}

func unknownPrediction(name string) Prediction {
	return Prediction{EntityName: name, PredictedType: EntityUnknown, Confidence: 0}
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
