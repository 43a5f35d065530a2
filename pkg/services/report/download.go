package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/services/report/export"
)

// Download is a rendered snapshot ready to stream as an attachment.
type Download struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Download renders the cached snapshot without recomputation. The
// format comes from the request, falling back to the report's stored
// format parameter and then to CSV; cached data that is not a row list
// exports as an empty table.
func (e *Engine) Download(ctx context.Context, reportID int64, format string) (*Download, error) {
	rec, err := e.reports.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = parseParameters(rec.Parameters).Format
	}
	format = strings.ToLower(format)
	if format == "" {
		format = export.FormatCSV
	}

	writer := export.ForFormat(format)
	rows := rowsFromCache(rec.CachedData)

	var buf bytes.Buffer
	if err := writer.Write(&buf, rows); err != nil {
		return nil, fmt.Errorf("render snapshot: %w", err)
	}

	name := slugify(rec.Name)
	if name == "" {
		name = fmt.Sprintf("report-%d", rec.ID)
	}
	return &Download{
		Filename:    name + "." + writer.Extension(),
		ContentType: writer.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}

// rowsFromCache decodes a stored snapshot back into ordered rows.
// Column order is reconstructed from the known report columns since
// JSON objects do not preserve it.
func rowsFromCache(cached json.RawMessage) []domain.Row {
	if len(cached) == 0 {
		return nil
	}
	var values []map[string]any
	if err := json.Unmarshal(cached, &values); err != nil {
		return nil
	}
	rows := make([]domain.Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, domain.Row{Columns: export.Headers(v), Values: v})
	}
	return rows
}

// slugify mirrors the portal's historical filename slugs: lowercase
// alphanumerics with runs of anything else collapsed to single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
