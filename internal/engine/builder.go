package engine

// Index field types supported by the drivers.
type IndexFieldType string

const (
	IndexFieldText    IndexFieldType = "TEXT"
	IndexFieldTag     IndexFieldType = "TAG"
	IndexFieldNumeric IndexFieldType = "NUMERIC"
)

// IndexField describes one schema field of an index.
type IndexField struct {
	Name   string
	Type   IndexFieldType
	Weight float64 // TEXT only; 0 means engine default
}

// IndexDefinition describes an index to create.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix adds key prefixes to the index.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Text adds a TEXT field.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldText})
	return b
}

// TextWithWeight adds a TEXT field with a relevance weight.
func (b *IndexBuilder) TextWithWeight(name string, weight float64) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldText, Weight: weight})
	return b
}

// Tag adds a TAG field.
func (b *IndexBuilder) Tag(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldTag})
	return b
}

// Numeric adds a NUMERIC field.
func (b *IndexBuilder) Numeric(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldNumeric})
	return b
}

// Build returns the accumulated definition.
func (b *IndexBuilder) Build() *IndexDefinition {
	return &b.def
}
