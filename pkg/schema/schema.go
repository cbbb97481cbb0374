// Package schema defines the schema metadata model consumed by the
// recognition engines: a named entity with an ordered list of typed fields,
// plus the semantic pattern sets and numeric feature extraction built on it.
package schema

// FieldDescriptor describes one field of a source table or collection.
// Type and Description are optional; absent metadata degrades match and
// classification quality but never errors.
type FieldDescriptor struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// SchemaDescriptor describes one source entity (table, collection, sheet).
type SchemaDescriptor struct {
	Name   string            `json:"name"`
	Fields []FieldDescriptor `json:"fields"`
}
