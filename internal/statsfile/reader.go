package statsfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingColumns is returned by Open when the header lacks required columns
var ErrMissingColumns = errors.New("missing required columns")

// RowError wraps a malformed record. It is recoverable: the reader stays usable.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("malformed record on line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader streams box score rows from a delimited file with a header
type Reader struct {
	file    io.Closer
	csv     *csv.Reader
	columns map[string]int
	header  []string
}

// Open opens path and validates its header against RequiredColumns
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f

	return r, nil
}

// NewReader reads and validates the header row from src
func NewReader(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input file is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return &Reader{
		csv:     cr,
		columns: columns,
		header:  header,
	}, nil
}

// Header returns the header row as read
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next record. It returns io.EOF at end of input and a
// *RowError for a record that could not be parsed; any other error is fatal.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return Row{}, &RowError{Line: parseErr.Line, Err: parseErr.Err}
	}
	if err != nil {
		return Row{}, fmt.Errorf("failed to read input: %w", err)
	}

	line, _ := r.csv.FieldPos(0)
	return Row{columns: r.columns, header: r.header, record: record, line: line}, nil
}

// Close closes the underlying file, if Open created one
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}
