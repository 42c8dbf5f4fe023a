package entity

// Dataset is the ordered, read-only set of rows loaded at startup.
type Dataset struct {
	source  string
	rows    []Row
	columns map[Selection]bool
}

// NewDataset cria um Dataset imutável. columns indica quais campos numéricos
// estavam presentes no cabeçalho do arquivo; nil significa todos.
func NewDataset(source string, rows []Row, columns []Selection) *Dataset {
	ds := &Dataset{
		source:  source,
		rows:    make([]Row, len(rows)),
		columns: make(map[Selection]bool),
	}
	copy(ds.rows, rows)

	if columns == nil {
		columns = allSelections
	}
	for _, c := range columns {
		ds.columns[c] = true
	}
	return ds
}

// Source returns where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows returns a copy of all rows.
func (d *Dataset) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// HasColumn reports whether the selected field was present in the source file.
func (d *Dataset) HasColumn(sel Selection) bool {
	return d.columns[sel]
}

// Columns returns the numeric fields present in the source, in display order.
func (d *Dataset) Columns() []Selection {
	var out []Selection
	for _, sel := range allSelections {
		if d.columns[sel] {
			out = append(out, sel)
		}
	}
	return out
}
