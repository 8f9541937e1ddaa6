package crowdstreet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Row is one record of a report, keyed by column name.
type Row map[string]string

// RowSource provides the rows of one report, in file order.
//
// The concrete reading of delimited files is kept out of the portfolio
// logic: the ledger only needs a deterministic row order and consistent
// column presence for a given report kind.
type RowSource interface {
	// Rows returns every row of the report or a *SourceReadError.
	Rows() ([]Row, error)
}

// RowSink accepts a header row and data rows and serializes them.
type RowSink interface {
	// WriteAll writes the header followed by every row, or returns a
	// *SourceWriteError. Creation and overwrite semantics belong to the
	// sink.
	WriteAll(header []string, rows [][]string) error
}

// reportComma infers the field delimiter from a report file extension,
// the way Crowdstreet names its exports.
func reportComma(path string) (rune, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv":
		return '\t', nil
	case ".csv":
		return ',', nil
	default:
		return 0, fmt.Errorf("unknown extension for %q: want .tsv or .csv", path)
	}
}

// ReportFile is a RowSource reading a delimited report file. The delimiter
// is inferred from the file extension (.tsv or .csv).
type ReportFile struct {
	path  string
	comma rune
}

// OpenReport returns a RowSource for the named report file. It fails with a
// *SourceReadError when the delimiter cannot be inferred from the extension.
func OpenReport(path string) (*ReportFile, error) {
	comma, err := reportComma(path)
	if err != nil {
		return nil, &SourceReadError{Name: path, Err: err}
	}
	return &ReportFile{path: path, comma: comma}, nil
}

// Rows reads the whole report. The file handle is released on every exit
// path, including parse failures mid-read.
func (f *ReportFile) Rows() ([]Row, error) {
	fd, err := os.Open(f.path)
	if err != nil {
		return nil, &SourceReadError{Name: f.path, Err: err}
	}
	defer fd.Close()

	rows, err := decodeRows(fd, f.comma)
	if err != nil {
		return nil, &SourceReadError{Name: f.path, Err: err}
	}
	log.Debug().Str("file", f.path).Int("rows", len(rows)).Msg("report read")
	return rows, nil
}

// DelimitedSource is a RowSource reading delimited rows from an io.Reader.
type DelimitedSource struct {
	name  string
	r     io.Reader
	comma rune
}

// NewDelimitedSource returns a RowSource reading from r with the given
// field delimiter. The name is used in error messages only.
func NewDelimitedSource(name string, r io.Reader, comma rune) *DelimitedSource {
	return &DelimitedSource{name: name, r: r, comma: comma}
}

func (s *DelimitedSource) Rows() ([]Row, error) {
	rows, err := decodeRows(s.r, s.comma)
	if err != nil {
		return nil, &SourceReadError{Name: s.name, Err: err}
	}
	return rows, nil
}

// decodeRows reads a header line then maps every record onto it.
func decodeRows(r io.Reader, comma rune) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("report is empty")
	}
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, len(header))
		for i, col := range header {
			row[strings.TrimSpace(col)] = record[i]
		}
		rows = append(rows, row)
	}
}

// FileSink is a RowSink writing a delimited file, creating parent
// directories as needed.
type FileSink struct {
	path  string
	comma rune
}

// NewFileSink returns a RowSink writing to the named file with the given
// field delimiter.
func NewFileSink(path string, comma rune) *FileSink {
	return &FileSink{path: path, comma: comma}
}

func (s *FileSink) WriteAll(header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &SourceWriteError{Name: s.path, Err: err}
	}
	fd, err := os.Create(s.path)
	if err != nil {
		return &SourceWriteError{Name: s.path, Err: err}
	}
	defer fd.Close()

	if err := encodeRows(fd, s.comma, header, rows); err != nil {
		return &SourceWriteError{Name: s.path, Err: err}
	}
	if err := fd.Close(); err != nil {
		return &SourceWriteError{Name: s.path, Err: err}
	}
	log.Info().Str("file", s.path).Int("rows", len(rows)).Msg("table written")
	return nil
}

// DelimitedSink is a RowSink writing delimited rows to an io.Writer.
type DelimitedSink struct {
	name  string
	w     io.Writer
	comma rune
}

// NewDelimitedSink returns a RowSink writing to w with the given field
// delimiter. The name is used in error messages only.
func NewDelimitedSink(name string, w io.Writer, comma rune) *DelimitedSink {
	return &DelimitedSink{name: name, w: w, comma: comma}
}

func (s *DelimitedSink) WriteAll(header []string, rows [][]string) error {
	if err := encodeRows(s.w, s.comma, header, rows); err != nil {
		return &SourceWriteError{Name: s.name, Err: err}
	}
	return nil
}

func encodeRows(w io.Writer, comma rune, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
