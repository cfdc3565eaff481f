package internal

import (
	"encoding/csv"
	"io"
	"iter"

	"github.com/cockroachdb/errors"
)

// ErrMalformedSource marks failures that invalidate the whole input, such
// as an unreadable header row, as opposed to a single bad record. Callers
// that skip bad records must still abort on errors carrying this mark.
var ErrMalformedSource = errors.New("malformed source")

// Record wraps one parsed CSV row or the error that prevented parsing it.
// Errors are surfaced per-record so the caller decides whether a bad row
// aborts the run or is skipped.
type Record[T any] struct {
	Value T
	Error error
}

// ParseCSV streams records from r, converting each row with fromCSV. When
// hasHeader is true the first row is consumed as the header and passed to
// fromCSV alongside every record.
func ParseCSV[T any](r io.Reader, hasHeader bool, fromCSV func(record, headers []string) (T, error)) iter.Seq[Record[T]] {
	return func(yield func(Record[T]) bool) {
		reader := csv.NewReader(r)

		var headers []string
		if hasHeader {
			row, err := reader.Read()
			if err != nil {
				yield(Record[T]{Error: errors.Mark(errors.Wrap(err, "failed to read CSV header"), ErrMalformedSource)})
				return
			}
			headers = row
		}

		for {
			row, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				if !yield(Record[T]{Error: errors.Wrap(err, "failed to read CSV record")}) {
					return
				}
				continue
			}

			value, err := fromCSV(row, headers)
			if !yield(Record[T]{Value: value, Error: err}) {
				return
			}
		}
	}
}
