package export

import (
	"io"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

const (
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatExcel = "excel"
)

// Writer renders snapshot rows to a tabular download.
type Writer interface {
	Write(w io.Writer, rows []domain.Row) error
	ContentType() string
	Extension() string
}

var writers = map[string]Writer{
	FormatCSV: csvWriter{},
}

// ForFormat picks a writer for the requested format. Spreadsheet
// formats fall back to CSV when no spreadsheet writer is registered,
// mirroring the portal's historical behavior when its xlsx backend was
// not installed.
func ForFormat(format string) Writer {
	if w, ok := writers[format]; ok {
		return w
	}
	return writers[FormatCSV]
}
