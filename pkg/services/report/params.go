package report

import (
	"encoding/json"
	"strconv"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

// parseParameters reads a stored parameter payload. Both "*_id" and
// bare keys are accepted for project/organization/indicator filters,
// with the id-suffixed spelling taking precedence. Values may arrive as
// JSON numbers or numeric strings; anything else is ignored.
func parseParameters(raw json.RawMessage) domain.ReportParameters {
	var params domain.ReportParameters
	if len(raw) == 0 {
		return params
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return params
	}

	params.ProjectID = firstID(obj, "project_id", "project")
	params.OrganizationID = firstID(obj, "organization_id", "organization")
	params.IndicatorIDs = firstIDList(obj, "indicator_ids", "indicators")
	params.DateFrom = asString(obj["date_from"])
	params.DateTo = asString(obj["date_to"])
	params.Format = asString(obj["format"])
	return params
}

func firstID(obj map[string]json.RawMessage, keys ...string) int64 {
	for _, key := range keys {
		if raw, ok := obj[key]; ok {
			if id := asID(raw); id != 0 {
				return id
			}
		}
	}
	return 0
}

func firstIDList(obj map[string]json.RawMessage, keys ...string) []int64 {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		var ids []int64
		for _, item := range items {
			if id := asID(item); id != 0 {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return nil
}

func asID(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var num int64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if parsed, err := strconv.ParseInt(str, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}

func asString(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return ""
	}
	return str
}
