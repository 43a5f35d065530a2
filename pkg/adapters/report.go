package adapters

import (
	"encoding/json"

	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

func MapReportDomainToApi(report *domain.Report) api.Report {
	out := api.Report{
		ID:            report.ID,
		Name:          report.Name,
		Description:   report.Description,
		ReportType:    report.ReportType,
		LastGenerated: report.LastGenerated,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
	if params, err := json.Marshal(mapParameters(report.Parameters)); err == nil {
		out.Parameters = params
	}
	if cached, err := json.Marshal(report.CachedRows); err == nil {
		out.CachedData = cached
	}
	return out
}

func mapParameters(p domain.ReportParameters) map[string]any {
	out := map[string]any{}
	if p.ProjectID != 0 {
		out["project_id"] = p.ProjectID
	}
	if p.OrganizationID != 0 {
		out["organization_id"] = p.OrganizationID
	}
	if len(p.IndicatorIDs) > 0 {
		out["indicator_ids"] = p.IndicatorIDs
	}
	if p.DateFrom != "" {
		out["date_from"] = p.DateFrom
	}
	if p.DateTo != "" {
		out["date_to"] = p.DateTo
	}
	if p.Format != "" {
		out["format"] = p.Format
	}
	return out
}

func MapScheduledReportDomainToApi(def *domain.ScheduledReport) api.ScheduledReport {
	recipients := def.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return api.ScheduledReport{
		ID:         def.ID,
		ReportName: def.ReportName,
		ReportType: def.ReportType,
		Frequency:  def.Frequency,
		Recipients: recipients,
		IsActive:   def.IsActive,
		NextRun:    def.NextRun,
		LastRun:    def.LastRun,
		CreatedAt:  def.CreatedAt,
	}
}

func MapOrganizationDomainToApi(org domain.Organization) api.Organization {
	return api.Organization{
		ID:       org.ID,
		Name:     org.Name,
		Code:     org.Code,
		Type:     org.Type,
		ParentID: org.ParentID,
		IsActive: org.IsActive,
	}
}
