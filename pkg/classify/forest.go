package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
)

// =============================================================================
// BAGGED FOREST
// Train returns an immutable (forest, scaler) model value; Classify reads it
// without mutation, so concurrent inference against one model is safe.
// Retraining builds a new Model.
// =============================================================================

// ErrInsufficientTraining signals that the training set cannot support a
// model; callers should stay on the heuristic strategy.
var ErrInsufficientTraining = errors.New("classify: insufficient training data")

// TrainOptions tunes the ensemble. Zero values select the defaults.
type TrainOptions struct {
	Trees    int   // default 100
	MaxDepth int   // default 10
	Seed     int64 // default 42
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 10
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	return o
}

// minTrainingSamples is the floor below which training refuses to fit.
const minTrainingSamples = 10

// Model is a trained classification artifact: the fitted forest plus the
// standardization statistics captured at fit time.
type Model struct {
	Trees        []*treeNode  `json:"trees"`
	Classes      []EntityType `json:"classes"`
	Scaler       *Scaler      `json:"scaler"`
	FeatureNames []string     `json:"feature_names"`
}

// Train fits a bagged decision-tree ensemble over standardized features.
// It errors when features and labels disagree in length, when fewer than
// minTrainingSamples rows are supplied, or when all labels share one class.
func Train(features [][]float64, labels []EntityType, opts TrainOptions) (*Model, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("classify: %d feature rows but %d labels", len(features), len(labels))
	}
	if len(features) < minTrainingSamples {
		return nil, fmt.Errorf("%w: %d rows (minimum %d)", ErrInsufficientTraining, len(features), minTrainingSamples)
	}
	width := len(features[0])
	for i, r := range features {
		if len(r) != width {
			return nil, fmt.Errorf("classify: feature row %d has width %d, want %d", i, len(r), width)
		}
	}

	classes := distinctClasses(labels)
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 classes, got %d", ErrInsufficientTraining, len(classes))
	}
	classIdx := make(map[EntityType]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = classIdx[l]
	}

	opts = opts.withDefaults()
	scaler := FitScaler(features)
	x := make([][]float64, len(features))
	for i, r := range features {
		x[i] = scaler.Transform(r)
	}

	nFeatures := int(math.Sqrt(float64(width)))
	if nFeatures < 1 {
		nFeatures = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	trees := make([]*treeNode, opts.Trees)
	for t := 0; t < opts.Trees; t++ {
		// Bootstrap sample with replacement.
		idx := make([]int, len(x))
		for i := range idx {
			idx[i] = rng.Intn(len(x))
		}
		trees[t] = buildTree(x, y, idx, len(classes), 0, opts.MaxDepth, nFeatures, rng)
	}

	return &Model{
		Trees:        trees,
		Classes:      classes,
		Scaler:       scaler,
		FeatureNames: schema.FeatureNames(),
	}, nil
}

// predict averages the leaf distributions of every tree over a standardized
// feature row.
func (m *Model) predict(raw []float64) []float64 {
	row := m.Scaler.Transform(raw)
	avg := make([]float64, len(m.Classes))
	for _, t := range m.Trees {
		dist := t.predict(row)
		for j := range avg {
			if j < len(dist) {
				avg[j] += dist[j]
			}
		}
	}
	for j := range avg {
		avg[j] /= float64(len(m.Trees))
	}
	return avg
}

// EncodeModel serializes a trained model for the caller-owned artifact store.
func EncodeModel(m *Model) ([]byte, error) {
	if m == nil {
		return nil, errors.New("classify: nil model")
	}
	return json.Marshal(m)
}

// DecodeModel restores a model produced by EncodeModel.
func DecodeModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("classify: decode model: %w", err)
	}
	if len(m.Trees) == 0 || len(m.Classes) == 0 || m.Scaler == nil {
		return nil, errors.New("classify: decoded model is incomplete")
	}
	return &m, nil
}

// distinctClasses returns the label set ordered by declaration rank so class
// indexes are stable across training runs.
func distinctClasses(labels []EntityType) []EntityType {
	seen := make(map[EntityType]bool)
	var out []EntityType
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := orderIndex(out[i]), orderIndex(out[j])
		if oi != oj {
			return oi < oj
		}
		return out[i] < out[j]
	})
	return out
}
