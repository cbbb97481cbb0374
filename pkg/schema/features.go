package schema

import "strings"

// =============================================================================
// FEATURE EXTRACTION
// SchemaDescriptor -> numeric feature vector, one row per entity. Pure and
// deterministic: malformed descriptors produce zero-filled features rather
// than errors.
// =============================================================================

// Declared-type buckets counted as features, in feature order.
var typeBuckets = []string{"string", "integer", "float", "boolean", "date", "timestamp"}

var featureNames = buildFeatureNames()

func buildFeatureNames() []string {
	names := []string{"name_length", "underscore_count", "space_count", "field_count"}
	for _, c := range Categories {
		names = append(names, c+"_matches")
	}
	for _, b := range typeBuckets {
		names = append(names, b+"_fields")
	}
	return names
}

// FeatureNames returns the ordered feature labels produced by
// ExtractFeatures. The slice is a copy.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// NumFeatures is the width of an extracted feature row.
func NumFeatures() int { return len(featureNames) }

// ExtractFeatures converts schema descriptors into a feature matrix with one
// row per entity.
func ExtractFeatures(schemas []SchemaDescriptor) [][]float64 {
	rows := make([][]float64, len(schemas))
	for i, s := range schemas {
		rows[i] = ExtractFeatureRow(s)
	}
	return rows
}

// ExtractFeatureRow converts a single descriptor into its feature vector.
func ExtractFeatureRow(s SchemaDescriptor) []float64 {
	row := make([]float64, 0, len(featureNames))
	row = append(row,
		float64(len(s.Name)),
		float64(strings.Count(s.Name, "_")),
		float64(strings.Count(s.Name, " ")),
		float64(len(s.Fields)),
	)
	for _, c := range Categories {
		n := 0
		for _, f := range s.Fields {
			n += CategoryFieldMatches(c, f.Name)
		}
		row = append(row, float64(n))
	}
	counts := make(map[string]int, len(typeBuckets))
	for _, f := range s.Fields {
		if b := TypeBucket(f.Type); b != "" {
			counts[b]++
		}
	}
	for _, b := range typeBuckets {
		row = append(row, float64(counts[b]))
	}
	return row
}

// TypeBucket normalizes a declared field type to one of the common buckets,
// or "" when the type is unknown. Timestamp is checked before date so
// "timestamp"/"datetime" do not land in the date bucket.
func TypeBucket(declared string) string {
	t := strings.ToLower(strings.TrimSpace(declared))
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "timestamp") || strings.Contains(t, "datetime"):
		return "timestamp"
	case strings.Contains(t, "date") || t == "time":
		return "date"
	case strings.Contains(t, "bool"):
		return "boolean"
	case strings.Contains(t, "int") || t == "serial" || t == "bigserial":
		return "integer"
	case strings.Contains(t, "float") || strings.Contains(t, "double") ||
		strings.Contains(t, "decimal") || strings.Contains(t, "numeric") ||
		strings.Contains(t, "real"):
		return "float"
	case strings.Contains(t, "char") || strings.Contains(t, "text") ||
		strings.Contains(t, "string") || t == "uuid":
		return "string"
	default:
		return ""
	}
}
