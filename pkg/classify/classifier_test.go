package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NOVUMSOLVO/MigrateIQ-sub000/pkg/schema"
)

func personSchema(name string) schema.SchemaDescriptor {
	return schema.SchemaDescriptor{
		Name: name,
		Fields: []schema.FieldDescriptor{
			{Name: "first_name", Type: "string"},
			{Name: "last_name", Type: "string"},
			{Name: "email", Type: "string"},
			{Name: "phone", Type: "string"},
		},
	}
}

func transactionSchema(name string) schema.SchemaDescriptor {
	return schema.SchemaDescriptor{
		Name: name,
		Fields: []schema.FieldDescriptor{
			{Name: "order_id", Type: "integer"},
			{Name: "amount", Type: "float"},
			{Name: "payment_status", Type: "string"},
			{Name: "invoice_total", Type: "float"},
		},
	}
}

func TestHeuristicEmptyFieldsIsUnknown(t *testing.T) {
	c := NewHeuristicClassifier(nil)
	p := c.Classify(schema.SchemaDescriptor{Name: "customers"})
	assert.Equal(t, EntityUnknown, p.PredictedType)
	assert.Zero(t, p.Confidence)
}

func TestHeuristicCustomersScenario(t *testing.T) {
	c := NewHeuristicClassifier(nil)
	p := c.Classify(schema.SchemaDescriptor{
		Name: "customers",
		Fields: []schema.FieldDescriptor{
			{Name: "first_name"},
			{Name: "email"},
			{Name: "phone"},
		},
	})
	assert.Equal(t, EntityPerson, p.PredictedType)
	assert.Greater(t, p.Confidence, 0.5)
	assert.LessOrEqual(t, p.Confidence, 1.0)
}

func TestHeuristicNoMatchIsUnknown(t *testing.T) {
	c := NewHeuristicClassifier(nil)
	p := c.Classify(schema.SchemaDescriptor{
		Name:   "zzz",
		Fields: []schema.FieldDescriptor{{Name: "qqq"}, {Name: "www"}},
	})
	assert.Equal(t, EntityUnknown, p.PredictedType)
	assert.Zero(t, p.Confidence)
}

func TestHeuristicConfidenceClamped(t *testing.T) {
	// Many matching fields push the raw score well past 10.
	fields := make([]schema.FieldDescriptor, 0, 20)
	for i := 0; i < 20; i++ {
		fields = append(fields, schema.FieldDescriptor{Name: "email"})
	}
	c := NewHeuristicClassifier(nil)
	p := c.Classify(schema.SchemaDescriptor{Name: "customers", Fields: fields})
	assert.Equal(t, EntityPerson, p.PredictedType)
	assert.Equal(t, 1.0, p.Confidence)
}

func trainingData() ([][]float64, []EntityType) {
	var features [][]float64
	var labels []EntityType
	personNames := []string{"customers", "employees", "users", "contacts", "patients", "subscribers"}
	txNames := []string{"orders", "payments", "invoices", "purchases", "sales", "refunds"}
	for _, n := range personNames {
		features = append(features, schema.ExtractFeatureRow(personSchema(n)))
		labels = append(labels, EntityPerson)
	}
	for _, n := range txNames {
		features = append(features, schema.ExtractFeatureRow(transactionSchema(n)))
		labels = append(labels, EntityTransaction)
	}
	return features, labels
}

func TestTrainAndClassify(t *testing.T) {
	features, labels := trainingData()
	model, err := Train(features, labels, TrainOptions{Trees: 25})
	require.NoError(t, err)

	fc := NewForestClassifier(model, nil)
	p := fc.Classify(personSchema("members"))
	assert.Equal(t, EntityPerson, p.PredictedType)
	assert.Greater(t, p.Confidence, 0.5)

	sum := 0.0
	for _, v := range p.Probabilities {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, p.Confidence, p.Probabilities[string(p.PredictedType)], 1e-12)
}

func TestTrainInsufficientData(t *testing.T) {
	features, labels := trainingData()

	_, err := Train(features[:4], labels[:4], TrainOptions{})
	require.ErrorIs(t, err, ErrInsufficientTraining)

	// Plenty of rows but a single class.
	single := make([]EntityType, len(labels))
	for i := range single {
		single[i] = EntityPerson
	}
	_, err = Train(features, single, TrainOptions{})
	require.ErrorIs(t, err, ErrInsufficientTraining)

	_, err = Train(features, labels[:5], TrainOptions{})
	require.Error(t, err)
}

func TestTrainDeterministic(t *testing.T) {
	features, labels := trainingData()
	m1, err := Train(features, labels, TrainOptions{Trees: 10, Seed: 42})
	require.NoError(t, err)
	m2, err := Train(features, labels, TrainOptions{Trees: 10, Seed: 42})
	require.NoError(t, err)

	b1, err := EncodeModel(m1)
	require.NoError(t, err)
	b2, err := EncodeModel(m2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestModelArtifactRoundTrip(t *testing.T) {
	features, labels := trainingData()
	model, err := Train(features, labels, TrainOptions{Trees: 15})
	require.NoError(t, err)

	data, err := EncodeModel(model)
	require.NoError(t, err)
	restored, err := DecodeModel(data)
	require.NoError(t, err)

	orig := NewForestClassifier(model, nil).Classify(transactionSchema("shipments"))
	back := NewForestClassifier(restored, nil).Classify(transactionSchema("shipments"))
	assert.Equal(t, orig.PredictedType, back.PredictedType)
	assert.InDelta(t, orig.Confidence, back.Confidence, 1e-12)

	_, err = DecodeModel([]byte("{"))
	assert.Error(t, err)
}

func TestForestClassifierEmptyFields(t *testing.T) {
	features, labels := trainingData()
	model, err := Train(features, labels, TrainOptions{Trees: 5})
	require.NoError(t, err)

	p := NewForestClassifier(model, nil).Classify(schema.SchemaDescriptor{Name: "x"})
	assert.Equal(t, EntityUnknown, p.PredictedType)
	assert.Zero(t, p.Confidence)
}

func TestFacadeSelectsStrategy(t *testing.T) {
	fallback := New(nil, nil)
	assert.False(t, fallback.Trained())
	p := fallback.Classify(personSchema("customers"))
	assert.Equal(t, EntityPerson, p.PredictedType)

	features, labels := trainingData()
	model, err := Train(features, labels, TrainOptions{Trees: 5})
	require.NoError(t, err)
	trained := New(model, nil)
	assert.True(t, trained.Trained())

	preds := trained.ClassifyAll([]schema.SchemaDescriptor{
		personSchema("customers"), transactionSchema("orders"),
	})
	require.Len(t, preds, 2)
	for _, p := range preds {
		assert.True(t, p.Confidence >= 0 && p.Confidence <= 1)
		assert.False(t, math.IsNaN(p.Confidence))
	}
}
