package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
)

func sampleFields() []schema.FieldDescriptor {
	return []schema.FieldDescriptor{
		{Name: "customer_id", Type: "integer", Description: "unique customer identifier"},
		{Name: "email_address", Type: "string", Description: "primary contact email"},
		{Name: "signup_date", Type: "date", Description: "account creation date"},
	}
}

func TestMatchSelfSimilarity(t *testing.T) {
	m := NewMatcher(nil, Options{}, nil)
	fields := sampleFields()

	candidates := m.Match(fields, fields)
	require.Len(t, candidates, len(fields))
	for _, c := range candidates {
		assert.Equal(t, c.SourceField, c.TargetField)
		assert.Equal(t, MappingDirect, c.MappingType)
		assert.False(t, c.NeedsTransformation)
		assert.Equal(t, 1.0, c.Confidence)
	}
}

func TestMatchDeterministic(t *testing.T) {
	fields := sampleFields()
	target := []schema.FieldDescriptor{
		{Name: "client_id", Type: "integer", Description: "unique customer identifier"},
		{Name: "contact_email", Type: "string", Description: "primary contact email"},
		{Name: "created_date", Type: "date", Description: "account creation date"},
	}

	first := NewMatcher(nil, Options{}, nil).Match(fields, target)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, NewMatcher(nil, Options{}, nil).Match(fields, target))
	}
}

func TestTransformDeterministic(t *testing.T) {
	v, err := FitVectorizer([]string{
		"customer identifier integer",
		"contact email string",
		"creation date",
	}, 0)
	require.NoError(t, err)

	text := "customer contact creation date"
	first := v.Transform(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, v.Transform(text))
	}
	assert.Equal(t, 1.0, cosine(first, v.Transform(text)))
}

func TestMatchRenamedIntegerField(t *testing.T) {
	m := NewMatcher(nil, Options{}, nil)
	source := []schema.FieldDescriptor{
		{Name: "cust_id", Type: "integer", Description: "unique customer identifier"},
	}
	target := []schema.FieldDescriptor{
		{Name: "customer_id", Type: "integer", Description: "unique customer identifier"},
	}

	candidates := m.Match(source, target)
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "cust_id", c.SourceField)
	assert.Equal(t, "customer_id", c.TargetField)
	assert.Equal(t, MappingDirect, c.MappingType)
	assert.GreaterOrEqual(t, c.Confidence, 0.7)
}

func TestMatchEmptyInputs(t *testing.T) {
	m := NewMatcher(nil, Options{}, nil)
	assert.Empty(t, m.Match(nil, sampleFields()))
	assert.Empty(t, m.Match(sampleFields(), nil))
	assert.Empty(t, m.Match(nil, nil))
}

func TestMatchThresholdFiltersWeakPairs(t *testing.T) {
	m := NewMatcher(nil, Options{}, nil)
	source := []schema.FieldDescriptor{
		{Name: "warehouse_temperature", Type: "float", Description: "sensor reading celsius"},
	}
	target := []schema.FieldDescriptor{
		{Name: "customer_id", Type: "integer", Description: "unique customer identifier"},
	}
	assert.Empty(t, m.Match(source, target))
}

func TestMatchSortedDescendingStable(t *testing.T) {
	m := NewMatcher(nil, Options{}, nil)
	fields := sampleFields()
	candidates := m.Match(fields, fields)
	require.NotEmpty(t, candidates)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Confidence, candidates[i].Confidence)
	}
	// Self-match is a full tie at 1.0: original source order must survive.
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.SourceField
	}
	assert.Equal(t, []string{"customer_id", "email_address", "signup_date"}, names)
}

func TestMappingTypes(t *testing.T) {
	cases := []struct {
		src, tgt string
		want     MappingType
	}{
		{"integer", "integer", MappingDirect},
		{"integer", "varchar(50)", MappingTypeConv},
		{"date", "timestamp", MappingDateTransform},
		{"varchar", "datetime", MappingDateTransform},
		{"float", "integer", MappingComplex},
		{"boolean", "varchar", MappingComplex},
		{"DATE", "date", MappingDirect},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mappingType(tc.src, tc.tgt), "%s -> %s", tc.src, tc.tgt)
	}
}

func TestTrainedVectorizerRoundTrip(t *testing.T) {
	corpus := append(sampleFields(),
		schema.FieldDescriptor{Name: "order_total", Type: "float", Description: "order grand total"},
		schema.FieldDescriptor{Name: "shipping_city", Type: "string", Description: "destination city"},
	)
	v, err := TrainVectorizer(corpus, 0)
	require.NoError(t, err)

	data, err := EncodeVectorizer(v)
	require.NoError(t, err)
	restored, err := DecodeVectorizer(data)
	require.NoError(t, err)

	m1 := NewMatcher(v, Options{}, nil)
	m2 := NewMatcher(restored, Options{}, nil)
	fields := sampleFields()
	assert.Equal(t, m1.Match(fields, fields), m2.Match(fields, fields))

	_, err = DecodeVectorizer([]byte(`{"vocabulary":{}}`))
	assert.Error(t, err)
}

func TestFitVectorizerEmptyCorpus(t *testing.T) {
	_, err := FitVectorizer([]string{"", "  "}, 0)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestVocabularyCap(t *testing.T) {
	corpus := []string{
		"alpha beta gamma delta epsilon",
		"alpha beta gamma delta zeta",
		"alpha beta gamma eta theta",
	}
	v, err := FitVectorizer(corpus, 5)
	require.NoError(t, err)
	assert.Len(t, v.Vocabulary, 5)
	// Highest-frequency unigrams survive the cap.
	assert.Contains(t, v.Vocabulary, "alpha")
	assert.Contains(t, v.Vocabulary, "beta")
}
