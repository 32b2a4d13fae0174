package simulator

import "math/rand"

// Statistics is a mock historical-outcome summary for a case type within a
// jurisdiction. The numbers are illustrative reference data, not a model.
type Statistics struct {
	WinRate        float64 `json:"win_rate"`
	AverageOutcome float64 `json:"average_outcome"`
	SampleSize     int     `json:"sample_size"`
	DataCurrency   string  `json:"data_currency"`
}

var baseStats = map[string]struct {
	winRate, averageOutcome float64
}{
	"traffic_ticket":  {0.65, 0.40},
	"small_claims":    {0.55, 0.70},
	"landlord_tenant": {0.45, 0.60},
	"contract":        {0.50, 0.65},
}

var jurisdictionMultipliers = map[string]float64{
	"CA": 1.1,
	"NY": 1.05,
	"TX": 0.95,
	"FL": 1.0,
}

// OutcomeStatistics returns the reference statistics for a case type,
// falling back to the small_claims row for unknown types and a neutral
// multiplier for unknown jurisdictions. The win rate is capped at 0.9.
func OutcomeStatistics(caseType, jurisdiction string) Statistics {
	stats, ok := baseStats[caseType]
	if !ok {
		stats = baseStats["small_claims"]
	}
	multiplier, ok := jurisdictionMultipliers[jurisdiction]
	if !ok {
		multiplier = 1.0
	}

	winRate := stats.winRate * multiplier
	if winRate > 0.9 {
		winRate = 0.9
	}

	return Statistics{
		WinRate:        winRate,
		AverageOutcome: stats.averageOutcome,
		SampleSize:     50 + rand.Intn(451),
		DataCurrency:   "Last 12 months",
	}
}
