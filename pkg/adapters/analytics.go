package adapters

import (
	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

func MapTrendSeriesDomainToApi(series *domain.TrendSeries) api.TrendSeries {
	out := api.TrendSeries{
		Data:     mapTrendPoints(series.Data),
		Trend:    series.Trend,
		Forecast: series.Forecast,
	}
	return out
}

func MapIndicatorSeriesDomainToApi(series []domain.IndicatorTrendSeries) []api.IndicatorTrendSeries {
	out := make([]api.IndicatorTrendSeries, 0, len(series))
	for _, s := range series {
		out = append(out, api.IndicatorTrendSeries{
			IndicatorID:   s.IndicatorID,
			IndicatorName: s.IndicatorName,
			Data:          mapTrendPoints(s.Data),
		})
	}
	return out
}

func MapIndicatorSummariesDomainToApi(rows []domain.IndicatorSummary) []api.IndicatorSummary {
	out := make([]api.IndicatorSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.IndicatorSummary{
			IndicatorID:   r.IndicatorID,
			IndicatorName: r.IndicatorName,
			TotalValue:    r.TotalValue,
			PeriodCount:   r.PeriodCount,
			Trend:         r.Trend,
		})
	}
	return out
}

func mapTrendPoints(points []domain.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.TrendPoint{
			Month:  p.Month,
			Value:  p.Value,
			Target: p.Target,
		})
	}
	return out
}
