package domain

// TrendPoint is one calendar-month bucket in a series.
type TrendPoint struct {
	Month  string // "Jan 2006"
	Value  float64
	Target float64
}

// TrendSeries is the single-indicator trend output. Trend is a constant
// label and Forecast repeats the last bucket's value; real trend
// detection is out of scope.
type TrendSeries struct {
	Data     []TrendPoint
	Trend    string
	Forecast float64
}

// IndicatorTrendSeries is one entry of the bulk trend output.
type IndicatorTrendSeries struct {
	IndicatorID   int64
	IndicatorName string
	Data          []TrendPoint
}

// IndicatorSummary is one row of the per-indicator summary.
type IndicatorSummary struct {
	IndicatorID   int64
	IndicatorName string
	TotalValue    float64
	PeriodCount   int
	Trend         string
}
