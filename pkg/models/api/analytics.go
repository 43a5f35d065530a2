package api

type TrendPoint struct {
	Month  string  `json:"month"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
}

type TrendSeries struct {
	Data     []TrendPoint `json:"data"`
	Trend    string       `json:"trend"`
	Forecast float64      `json:"forecast"`
}

type IndicatorTrendSeries struct {
	IndicatorID   int64        `json:"indicator_id"`
	IndicatorName string       `json:"indicator_name"`
	Data          []TrendPoint `json:"data"`
}

type BulkTrendResponse struct {
	Series []IndicatorTrendSeries `json:"series"`
}

type IndicatorSummary struct {
	IndicatorID   int64   `json:"indicator_id"`
	IndicatorName string  `json:"indicator_name"`
	TotalValue    float64 `json:"total_value"`
	PeriodCount   int     `json:"period_count"`
	Trend         string  `json:"trend"`
}

type Error struct {
	Detail string `json:"detail"`
}
