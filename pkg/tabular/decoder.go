package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/gocarina/gocsv"
)

var ErrEmptyTable = errors.New("tabular: no header row")

const byteOrderMark = "\uFEFF"

type Row map[string]string

type Table struct {
	Headers []string
	records [][]string
}

// Decode reads delimited text into a table. The first non-empty line is the
// header and its keys are lower cased with punctuation stripped.
func Decode(text string, delimiter rune) (*Table, error) {
	text = strings.TrimPrefix(text, byteOrderMark)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	table := &Table{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if isBlank(record) {
			continue
		}

		if table.Headers == nil {
			table.Headers = make([]string, len(record))
			for i, header := range record {
				table.Headers[i] = NormaliseHeader(header)
			}
			continue
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		table.records = append(table.records, record)
	}

	if table.Headers == nil {
		return nil, ErrEmptyTable
	}

	return table, nil
}

func NormaliseHeader(header string) string {
	header = strings.TrimPrefix(header, byteOrderMark)

	var builder strings.Builder
	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}

func (t *Table) Len() int {
	return len(t.records)
}

// Rows returns every data row keyed by header, in file order
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, len(t.records))

	for _, record := range t.records {
		row := Row{}
		for i, header := range t.Headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// Unmarshal decodes the table into a slice of csv tagged structs. Headers are
// first resolved against the given columns so the struct tags only ever have
// to name the canonical column.
func (t *Table) Unmarshal(columns []Column, out interface{}) error {
	schema := t.Resolve(columns)

	canonical := make([][]string, 0, len(t.records)+1)

	header := make([]string, len(columns))
	for i, column := range columns {
		header[i] = column.Name
	}
	canonical = append(canonical, header)

	for _, row := range t.Rows() {
		record := make([]string, len(columns))
		for i, column := range columns {
			record[i] = schema.Value(row, column.Name)
		}
		canonical = append(canonical, record)
	}

	return gocsv.UnmarshalCSV(&recordReader{records: canonical}, out)
}

// recordReader feeds already split records into gocsv
type recordReader struct {
	records [][]string
	offset  int
}

func (r *recordReader) Read() ([]string, error) {
	if r.offset >= len(r.records) {
		return nil, io.EOF
	}

	record := r.records[r.offset]
	r.offset++

	return record, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	remaining := r.records[r.offset:]
	r.offset = len(r.records)

	return remaining, nil
}
