package crowdstreet

import "fmt"

// MalformedRowError reports a report row that cannot be turned into a
// Transaction: a required column is missing, a field does not parse as a
// number or a date, or the row contradicts data already loaded.
type MalformedRowError struct {
	Column string // offending column, empty when the row as a whole is bad
	Reason string
	Err    error // underlying parse error, may be nil
}

func (e *MalformedRowError) Error() string {
	msg := "malformed row"
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// SourceReadError reports that a row source could not be opened or read.
type SourceReadError struct {
	Name string // name of the source, typically a file path
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.Name, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// SourceWriteError reports that a row sink could not be created or written.
type SourceWriteError struct {
	Name string // name of the sink, typically a file path
	Err  error
}

func (e *SourceWriteError) Error() string {
	return fmt.Sprintf("cannot write %q: %v", e.Name, e.Err)
}

func (e *SourceWriteError) Unwrap() error { return e.Err }
