// Package match ranks candidate field mappings between a source and a target
// schema by textual similarity. Field name, description and declared type are
// vectorized with tf-idf; each source field takes its single best cosine
// match above a fixed acceptance threshold.
package match

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
)

// MappingType describes what a migration has to do to move a field.
type MappingType string

const (
	MappingDirect        MappingType = "direct"
	MappingTypeConv      MappingType = "type_conversion"
	MappingDateTransform MappingType = "date_transformation"
	MappingComplex       MappingType = "complex"
)

// Candidate is one proposed source-to-target field mapping.
type Candidate struct {
	SourceField         string      `json:"source_field"`
	TargetField         string      `json:"target_field"`
	Confidence          float64     `json:"confidence"`
	MappingType         MappingType `json:"mapping_type"`
	NeedsTransformation bool        `json:"needs_transformation"`
}

// DefaultThreshold is the global acceptance bound on cosine similarity.
const DefaultThreshold = 0.7

// Options tunes a Matcher. Zero values select the defaults.
type Options struct {
	Threshold   float64 // default DefaultThreshold
	MaxFeatures int     // default DefaultMaxFeatures, used for ad hoc fits
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = DefaultMaxFeatures
	}
	return o
}

// Matcher matches fields across two schemas. The vectorizer handle is
// optional: without one, each Match call fits ad hoc on its own two inputs,
// a lower-quality fallback that is logged.
type Matcher struct {
	vectorizer *Vectorizer
	opts       Options
	logger     *zap.Logger
}

// NewMatcher builds a matcher around an optional trained vectorizer.
func NewMatcher(v *Vectorizer, opts Options, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{vectorizer: v, opts: opts.withDefaults(), logger: logger}
}

// FieldText is the text representation a field is vectorized from.
func FieldText(f schema.FieldDescriptor) string {
	return strings.TrimSpace(f.Name + " " + f.Description + " " + f.Type)
}

// TrainVectorizer fits a vectorizer on a historical corpus of field texts,
// typically collected from previously confirmed mappings.
func TrainVectorizer(fields []schema.FieldDescriptor, maxFeatures int) (*Vectorizer, error) {
	corpus := make([]string, len(fields))
	for i, f := range fields {
		corpus[i] = FieldText(f)
	}
	return FitVectorizer(corpus, maxFeatures)
}

// Match proposes ranked field mappings from source to target. Empty inputs
// produce an empty result, not an error. Output is sorted by confidence
// descending; ties keep the original source-field order.
func (m *Matcher) Match(source, target []schema.FieldDescriptor) []Candidate {
	if len(source) == 0 || len(target) == 0 {
		return nil
	}

	v := m.vectorizer
	if v == nil {
		corpus := make([]string, 0, len(source)+len(target))
		for _, f := range source {
			corpus = append(corpus, FieldText(f))
		}
		for _, f := range target {
			corpus = append(corpus, FieldText(f))
		}
		fitted, err := FitVectorizer(corpus, m.opts.MaxFeatures)
		if err != nil {
			m.logger.Warn("ad hoc vectorizer fit failed; no candidates",
				zap.Error(err))
			return nil
		}
		m.logger.Warn("no trained vectorizer; fitting ad hoc on the input schemas")
		v = fitted
	}

	targetVecs := make([]map[int]float64, len(target))
	for j, f := range target {
		targetVecs[j] = v.Transform(FieldText(f))
	}

	var out []Candidate
	for _, sf := range source {
		sv := v.Transform(FieldText(sf))
		bestJ, bestSim := -1, 0.0
		for j := range target {
			sim := cosine(sv, targetVecs[j])
			if sim > bestSim {
				bestSim = sim
				bestJ = j
			}
		}
		if bestJ < 0 || bestSim < m.opts.Threshold {
			continue
		}
		tf := target[bestJ]
		mt := mappingType(sf.Type, tf.Type)
		out = append(out, Candidate{
			SourceField:         sf.Name,
			TargetField:         tf.Name,
			Confidence:          bestSim,
			MappingType:         mt,
			NeedsTransformation: mt != MappingDirect,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// mappingType derives the transformation class from the two declared types.
func mappingType(srcType, tgtType string) MappingType {
	src := strings.ToLower(strings.TrimSpace(srcType))
	tgt := strings.ToLower(strings.TrimSpace(tgtType))
	switch {
	case src == tgt:
		return MappingDirect
	case isIntegerType(src) && isStringType(tgt):
		return MappingTypeConv
	case strings.Contains(src, "date") || strings.Contains(tgt, "date"):
		return MappingDateTransform
	default:
		return MappingComplex
	}
}

func isIntegerType(t string) bool {
	return strings.Contains(t, "int") || t == "serial" || t == "bigserial"
}

func isStringType(t string) bool {
	return strings.Contains(t, "char") || strings.Contains(t, "text") ||
		strings.Contains(t, "string")
}
