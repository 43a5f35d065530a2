package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

type csvWriter struct{}

func (csvWriter) ContentType() string { return "text/csv" }
func (csvWriter) Extension() string   { return "csv" }

func (csvWriter) Write(w io.Writer, rows []domain.Row) error {
	out := csv.NewWriter(w)

	if len(rows) == 0 {
		if err := out.Write([]string{"No data"}); err != nil {
			return err
		}
		out.Flush()
		return out.Error()
	}

	headers := rows[0].Columns
	if err := out.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, 0, len(headers))
		for _, col := range headers {
			record = append(record, formatCell(row.Get(col)))
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}
