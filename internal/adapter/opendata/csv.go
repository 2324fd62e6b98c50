package opendata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/incident-report/internal/domain"
)

// ErrEmptyDataset is returned when the source has no header row.
var ErrEmptyDataset = errors.New("dataset has no header row")

const utf8BOM = "\ufeff"

// ParseCSV reads a comma-separated dataset with a header row. Rows shorter
// than the header are padded with empty strings.
func ParseCSV(r io.Reader) (domain.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.RawTable{}, ErrEmptyDataset
	}
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("parse csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var rows [][]string //nolint:prealloc // size depends on the download
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("parse csv: %w", err)
		}
		if len(rec) < len(header) {
			padded := make([]string, len(header))
			copy(padded, rec)
			rec = padded
		}
		rows = append(rows, rec)
	}

	return domain.RawTable{Columns: header, Rows: rows}, nil
}
