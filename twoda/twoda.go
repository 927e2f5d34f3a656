// Package twoda implements the BioWare 2DA tabular codec (spec.md §3,
// §4.4): a binary table format with deduplicated cell strings in a
// shared heap, plus a CSV text projection for editing round-trip. Heap
// dedup on encode is grounded on internal/intern's bidirectional
// name<->id map, the same structure the GFF encoder uses for labels.
package twoda

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/internal/intern"
	"github.com/andastra/andastra/internal/xdr"
)

// EmptyCell is the literal token the text and binary round-trips use in
// place of a genuinely empty cell (spec.md §3).
const EmptyCell = "****"

// Row is one 2DA record: its row label and ordered cell values, one per
// header column.
type Row struct {
	Label string
	Cells []string
}

// Table is a decoded 2DA: column headers and rows, each with
// |row.Cells| == |Headers| (spec.md §3 invariant).
type Table struct {
	Headers []string
	Rows    []Row
}

// Cell returns the value of the named column in row, or "" and false if
// the column or row doesn't exist.
func (t *Table) Cell(row int, column string) (string, bool) {
	idx := t.columnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	return t.Rows[row].Cells[idx], true
}

// SetCell sets the value of the named column in row. Fails if the column
// or row doesn't exist.
func (t *Table) SetCell(row int, column, value string) error {
	idx := t.columnIndex(column)
	if idx < 0 {
		return aerrors.NewSemanticError("twoda.SetCell", aerrors.SelectorNoMatch, "", nil)
	}
	if row < 0 || row >= len(t.Rows) {
		return aerrors.NewSemanticError("twoda.SetCell", aerrors.SelectorNoMatch, "", nil)
	}
	t.Rows[row].Cells[idx] = value
	return nil
}

func (t *Table) columnIndex(column string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(h, column) {
			return i
		}
	}
	return -1
}

// RowByLabel returns the index of the first row whose label matches
// (case-insensitively), or -1.
func (t *Table) RowByLabel(label string) int {
	for i, r := range t.Rows {
		if strings.EqualFold(r.Label, label) {
			return i
		}
	}
	return -1
}

// AddRow appends a new row with the given label and column values
// (missing columns fill with EmptyCell), returning its index.
func (t *Table) AddRow(label string, values map[string]string) int {
	cells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		if v, ok := values[h]; ok {
			cells[i] = v
		} else {
			cells[i] = EmptyCell
		}
	}
	t.Rows = append(t.Rows, Row{Label: label, Cells: cells})
	return len(t.Rows) - 1
}

// AddColumn appends a new column named name with the given default value
// for every existing row, and per-row overrides in values (row index ->
// value).
func (t *Table) AddColumn(name, def string, values map[int]string) {
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		v := def
		if ov, ok := values[i]; ok {
			v = ov
		}
		t.Rows[i].Cells = append(t.Rows[i].Cells, v)
	}
}

const headerMagic = "2DA "
const headerVersion = "V2.b"

// Decode parses a binary 2DA byte buffer.
func Decode(data []byte) (*Table, error) {
	r := xdr.NewReader(data)
	if r.Len() < 9 {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.TruncatedSection, nil)
	}
	sig := string(r.ReadRaw(4))
	if sig != headerMagic {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	if ver != headerVersion {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.UnsupportedVersion, nil)
	}
	nl := r.ReadUint8()
	if nl != 0x0A {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.BadSignature, nil)
	}

	headers, err := readNulTerminatedTSV(r)
	if err != nil {
		return nil, err
	}
	columnCount := len(headers)

	rowCount := int(r.ReadUint32())
	if r.Error() != nil {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.TruncatedSection, r.Error())
	}

	labels := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		labels[i] = readTabTerminated(r)
		if r.Error() != nil {
			return nil, aerrors.NewParseError("twoda.Decode", aerrors.TruncatedSection, r.Error())
		}
	}

	offsets := make([]uint16, rowCount*columnCount)
	for i := range offsets {
		offsets[i] = r.ReadUint16()
	}
	if r.Error() != nil {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.TruncatedSection, r.Error())
	}

	heapSize := int(r.ReadUint16())
	if r.Error() != nil {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.TruncatedSection, r.Error())
	}
	heap := r.ReadRaw(heapSize)
	if r.Error() != nil {
		return nil, aerrors.NewParseError("twoda.Decode", aerrors.TruncatedSection, r.Error())
	}

	readHeapString := func(off uint16) string {
		start := int(off)
		if start >= len(heap) {
			return ""
		}
		end := start
		for end < len(heap) && heap[end] != 0 {
			end++
		}
		return string(heap[start:end])
	}

	rows := make([]Row, rowCount)
	for i := 0; i < rowCount; i++ {
		cells := make([]string, columnCount)
		for c := 0; c < columnCount; c++ {
			cells[c] = readHeapString(offsets[i*columnCount+c])
		}
		rows[i] = Row{Label: labels[i], Cells: cells}
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

func readNulTerminatedTSV(r *xdr.Reader) ([]string, error) {
	var buf []byte
	for {
		b := r.ReadUint8()
		if r.Error() != nil {
			return nil, aerrors.NewParseError("twoda.readNulTerminatedTSV", aerrors.TruncatedSection, r.Error())
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	if len(buf) == 0 {
		return nil, nil
	}
	return strings.Split(string(buf), "\t"), nil
}

func readTabTerminated(r *xdr.Reader) string {
	var buf []byte
	for {
		b := r.ReadUint8()
		if r.Error() != nil {
			return string(buf)
		}
		if b == '\t' {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// Encode serializes t to binary 2DA bytes, deduplicating equal cell
// strings into a single heap entry (spec.md §4.4's binary encoder
// requirement; heap order itself is not required to match any particular
// third-party producer's, only the logical table on decode).
func Encode(t *Table) ([]byte, error) {
	w := xdr.NewWriter()
	w.WriteRaw([]byte(headerMagic))
	w.WriteRaw([]byte(headerVersion))
	w.WriteUint8(0x0A)

	w.WriteRaw([]byte(strings.Join(t.Headers, "\t")))
	w.WriteUint8(0)

	w.WriteUint32(uint32(len(t.Rows)))
	for _, row := range t.Rows {
		w.WriteRaw([]byte(row.Label))
		w.WriteUint8('\t')
	}

	// Intern every cell in row-major order to learn the dedup set in
	// first-seen order, then lay out the heap in that order and record
	// each interned string's byte offset.
	heap := intern.New()
	for _, row := range t.Rows {
		for _, c := range row.Cells {
			heap.Intern(c)
		}
	}

	names := heap.Names()
	offsetByID := make([]uint16, len(names))
	var heapBuf bytes.Buffer
	for id, name := range names {
		offsetByID[id] = uint16(heapBuf.Len())
		heapBuf.WriteString(name)
		heapBuf.WriteByte(0)
	}

	for _, row := range t.Rows {
		for _, c := range row.Cells {
			id, _ := heap.Lookup(c)
			w.WriteUint16(offsetByID[id])
		}
	}

	if heapBuf.Len() > 0xFFFF {
		return nil, aerrors.NewParseError("twoda.Encode", aerrors.IntegerOverflow, nil)
	}
	w.WriteUint16(uint16(heapBuf.Len()))
	w.WriteRaw(heapBuf.Bytes())

	return w.Bytes(), nil
}

// ToCSV renders t as a comma-separated projection: a header row of
// "" (label column) + Headers, then one row per Row. EmptyCell is
// preserved verbatim (spec.md §4.4).
func ToCSV(t *Table) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(append([]string{""}, t.Headers...)); err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		rec := make([]string, 0, len(row.Cells)+1)
		rec = append(rec, row.Label)
		rec = append(rec, row.Cells...)
		if err := cw.Write(rec); err != nil {
			return "", err
		}
	}
	cw.Flush()
	return buf.String(), cw.Error()
}

// FromCSV parses a CSV projection produced by ToCSV back into a Table.
func FromCSV(text string) (*Table, error) {
	cr := csv.NewReader(bufio.NewReader(strings.NewReader(text)))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, aerrors.NewParseError("twoda.FromCSV", aerrors.TruncatedSection, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	headers := records[0][1:]
	t := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if len(rec) < 1 {
			continue
		}
		cells := make([]string, len(headers))
		copy(cells, rec[1:])
		for i := range cells {
			if cells[i] == "" {
				cells[i] = EmptyCell
			}
		}
		t.Rows = append(t.Rows, Row{Label: rec[0], Cells: cells})
	}
	return t, nil
}
