package model

// API endpoint paths served by the analytics backend.
const (
	EndpointMarkets  = "/api/markets"
	EndpointMovers   = "/api/movers"
	EndpointVolIndex = "/api/volindex"
	EndpointBreadth  = "/api/breadth"
	EndpointHealth   = "/api/health"
)

// Query parameter names shared between client and demo server.
const (
	ParamLimit        = "limit"
	ParamHours        = "hours"
	ParamPoints       = "points"
	ParamMetric       = "metric"
	ParamMinPrevValue = "min_prev_value"
	ParamRefresh      = "refresh"
)

// Well-known row field names. Endpoints return a superset of these;
// each view declares only the fields it reads.
const (
	FieldTicker       = "ticker"
	FieldQuestion     = "question"
	FieldTimestamp    = "ts"
	FieldValue        = "value"
	FieldVolume       = "volume"
	FieldLiquidity    = "liquidity"
	FieldSpread       = "spread"
	FieldMidPrice     = "mid_price"
	FieldTradability  = "tradability"
	FieldChurnRate    = "churn_rate"
	FieldUncertainty  = "uncertainty"
	FieldChangePct    = "change_pct"
	FieldPrevValue    = "prev_value"
	FieldVolumeDelta  = "volume_delta"
	FieldOIDelta      = "oi_delta"
	FieldBreadthDelta = "breadth_delta"
)
