package frame

// RowContext is a read-only view over one row of a frame. Field names are
// not unique; lookups by name return the first match.
type RowContext struct {
	series string
	fields []*Field
	index  int
}

// NewRowContext spans every field of fr at row.
func NewRowContext(fr *Frame, row int) RowContext {
	if fr == nil {
		return RowContext{index: row}
	}
	return RowContext{series: fr.Name, fields: fr.Fields, index: row}
}

// SingleFieldRow is a row made of exactly one field.
func SingleFieldRow(field *Field, row int) RowContext {
	if field == nil {
		return RowContext{index: row}
	}
	return RowContext{fields: []*Field{field}, index: row}
}

// Index is the row index the view points at.
func (r RowContext) Index() int { return r.index }

// Len is the number of fields in the row.
func (r RowContext) Len() int { return len(r.fields) }

// SeriesName is the name of the frame the row belongs to, if any.
func (r RowContext) SeriesName() string { return r.series }

// Field returns the field at column i.
func (r RowContext) Field(i int) (*Field, bool) {
	if i < 0 || i >= len(r.fields) || r.fields[i] == nil {
		return nil, false
	}
	return r.fields[i], true
}

// FieldByName returns the column of the first field named name.
func (r RowContext) FieldByName(name string) (int, bool) {
	for i, field := range r.fields {
		if field != nil && field.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Raw returns the raw value of column i at the row.
func (r RowContext) Raw(i int) (any, bool) {
	field, ok := r.Field(i)
	if !ok {
		return nil, false
	}
	return field.ValueAt(r.index)
}

// Display returns the formatted value of column i at the row.
func (r RowContext) Display(i int) (DisplayValue, bool) {
	field, ok := r.Field(i)
	if !ok {
		return DisplayValue{}, false
	}
	return field.DisplayAt(r.index)
}

// TimeField returns the column carrying the row timestamp. The preferred
// column wins when it is time typed, otherwise the first time field is used.
func (r RowContext) TimeField(preferred int) (int, bool) {
	if field, ok := r.Field(preferred); ok && field.ResolvedType() == FieldTypeTime {
		return preferred, true
	}
	for i, field := range r.fields {
		if field != nil && field.ResolvedType() == FieldTypeTime {
			return i, true
		}
	}
	return -1, false
}
