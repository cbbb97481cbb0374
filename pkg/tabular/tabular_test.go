package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesColumns(t *testing.T) {
	_, err := New("orders", nil, []Record{{"a": 1}})
	require.ErrorIs(t, err, ErrNoColumns)

	_, err = New("orders", []string{"a", "a"}, nil)
	require.Error(t, err)

	tbl, err := New("orders", []string{"a", "b"}, []Record{{"a": 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
	assert.Nil(t, tbl.Column("b")[0])
}

func TestFromRecordsSortsColumns(t *testing.T) {
	tbl := FromRecords("t", []Record{{"b": 1}, {"a": 2, "c": 3}})
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
}

func TestCoercion(t *testing.T) {
	f, ok := AsFloat("3.14")
	require.True(t, ok)
	assert.InDelta(t, 3.14, f, 1e-12)

	_, ok = AsFloat("abc")
	assert.False(t, ok)

	b, ok := AsBool("Yes")
	require.True(t, ok)
	assert.True(t, b)

	// Numeric strings must stay numeric, not boolean.
	_, ok = AsBool("1")
	assert.False(t, ok)

	ts, ok := AsTime("2024-06-01")
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = AsTime("not a date")
	assert.False(t, ok)
}

func TestDetectKind(t *testing.T) {
	cases := []struct {
		name   string
		values []any
		want   Kind
	}{
		{"numeric strings", []any{"1", "2", "3.5"}, KindNumeric},
		{"native numbers", []any{1, 2.5, int64(3)}, KindNumeric},
		{"booleans", []any{true, "false", "yes"}, KindBoolean},
		{"dates", []any{"2024-01-02", time.Now()}, KindDatetime},
		{"text", []any{"alpha", "beta", "42"}, KindText},
		{"all blank", []any{nil, "", "   "}, KindEmpty},
		{"numeric with blanks", []any{"1", nil, "2"}, KindNumeric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectKind(tc.values))
		})
	}
}

func TestSampleDeterministic(t *testing.T) {
	records := make([]Record, 100)
	for i := range records {
		records[i] = Record{"n": i}
	}
	tbl, err := New("big", []string{"n"}, records)
	require.NoError(t, err)

	s1, info1 := tbl.Sample(20, 42)
	s2, info2 := tbl.Sample(20, 42)
	require.True(t, info1.Sampled)
	assert.Equal(t, info1, info2)
	assert.Equal(t, 20, s1.NumRows())
	assert.Equal(t, s1.Records, s2.Records)

	// Sampled rows keep their original relative order.
	prev := -1
	for _, r := range s1.Records {
		n := r["n"].(int)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestSampleBelowCapIsIdentity(t *testing.T) {
	tbl, err := New("small", []string{"n"}, []Record{{"n": 1}, {"n": 2}})
	require.NoError(t, err)
	s, info := tbl.Sample(10, 42)
	assert.False(t, info.Sampled)
	assert.Equal(t, tbl.Records, s.Records)
}

func TestNullAndBlank(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.False(t, IsNull(""))
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank(0))
}
