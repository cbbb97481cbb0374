// Package engine wires the five recognition components behind one value for
// platform layers that want a single entry point. All components stay usable
// on their own; the engine only assembles them from a shared Config.
package engine

import (
	"go.uber.org/zap"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/classify"
	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/config"
	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/match"
	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/profile"
	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/quality"
	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/tabular"
)

// Artifacts carries the optional trained handles. Nil members select the
// fallback strategies (heuristic classification, ad hoc vectorizer fits).
type Artifacts struct {
	Model      *classify.Model
	Vectorizer *match.Vectorizer
}

// Engine bundles the recognition components.
type Engine struct {
	Classifier *classify.Classifier
	Matcher    *match.Matcher
	Profiler   *profile.Profiler
	Assessor   *quality.Assessor
}

// New assembles an engine from configuration and optional trained artifacts.
func New(cfg config.Config, artifacts Artifacts, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Classifier: classify.New(artifacts.Model, logger.Named("classify")),
		Matcher: match.NewMatcher(artifacts.Vectorizer, match.Options{
			Threshold:   cfg.Matcher.SimilarityThreshold,
			MaxFeatures: cfg.Matcher.MaxFeatures,
		}, logger.Named("match")),
		Profiler: profile.NewProfiler(profile.Options{
			RowCap: cfg.Profiler.RowCap,
			Seed:   cfg.Profiler.Seed,
		}, logger.Named("profile")),
		Assessor: quality.NewAssessor(quality.Options{
			Contamination: cfg.Quality.Contamination,
			Seed:          cfg.Quality.Seed,
		}, logger.Named("quality")),
	}
}

// ClassifySchemas predicts a semantic type per descriptor.
func (e *Engine) ClassifySchemas(schemas []schema.SchemaDescriptor) []classify.Prediction {
	return e.Classifier.ClassifyAll(schemas)
}

// MatchFields proposes ranked source-to-target field mappings.
func (e *Engine) MatchFields(source, target []schema.FieldDescriptor) []match.Candidate {
	return e.Matcher.Match(source, target)
}

// ProfileTable computes the statistical profile of a sample.
func (e *Engine) ProfileTable(t *tabular.Table) (*profile.DatasetProfile, error) {
	return e.Profiler.Profile(t)
}

// AssessQuality scores a sample across the five quality dimensions.
func (e *Engine) AssessQuality(t *tabular.Table) (*quality.Report, error) {
	return e.Assessor.Assess(t)
}
