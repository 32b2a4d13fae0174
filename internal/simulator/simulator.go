package simulator

import (
	"math/rand"
	"strings"

	"github.com/stellarlinkco/lawclerk/internal/casefile"
)

const (
	baseWinRate = 50

	// The clamp interval is the one hard invariant: the reported
	// probability is always inside it, whatever the inputs.
	minWinProbability = 20
	maxWinProbability = 90

	perturbationRange = 15

	similarityThreshold = 0.5
)

var jurisdictionModifiers = map[string]int{
	"CA": 10,
	"NY": 5,
	"TX": -5,
	"FL": 0,
}

var strategies = map[string][]string{
	"high":   {"Aggressive litigation", "Demand full compensation", "Take to trial"},
	"medium": {"Negotiate settlement", "Mediation", "Limited litigation"},
	"low":    {"Settlement focus", "Damage control", "Alternative resolution"},
}

// durationTable is checked in order; first keyword hit wins.
var durationTable = []struct {
	keyword  string
	duration string
}{
	{"traffic", "2-4 weeks"},
	{"small claims", "1-3 months"},
	{"landlord", "3-6 months"},
	{"contract", "2-8 months"},
	{"personal injury", "6-18 months"},
}

const defaultDuration = "2-6 months"

// Outcome is the simulator's heuristic forecast for one case.
type Outcome struct {
	WinProbability    int      `json:"win_probability"`
	BestStrategy      string   `json:"best_strategy"`
	RiskFactors       []string `json:"risk_factors"`
	EstimatedDuration string   `json:"estimated_duration"`
	ConfidenceLevel   string   `json:"confidence_level"`
	SimilarCases      int      `json:"similar_cases"`
}

// Simulate scores a case using the package's default randomness.
func Simulate(caseText string, mem casefile.Memory) Outcome {
	return SimulateWithRand(caseText, mem, rand.Intn)
}

// SimulateWithRand scores a case with an injectable uniform-int source
// (intn(n) must return a value in [0, n)). Everything except the single
// bounded perturbation and the strategy pick is deterministic.
func SimulateWithRand(caseText string, mem casefile.Memory, intn func(int) int) Outcome {
	caseLower := strings.ToLower(caseText)

	winProbability := baseWinRate + jurisdictionModifiers[mem.Jurisdiction()]

	// Case-category modifiers, checked in fixed priority order.
	switch {
	case strings.Contains(caseLower, "traffic") || strings.Contains(caseLower, "ticket"):
		winProbability += 15
	case strings.Contains(caseLower, "small claims"):
		winProbability += 5
	case strings.Contains(caseLower, "landlord") || strings.Contains(caseLower, "tenant"):
		winProbability -= 10
	}

	winProbability += intn(2*perturbationRange+1) - perturbationRange
	winProbability = clamp(winProbability, minWinProbability, maxWinProbability)

	bucket := "low"
	switch {
	case winProbability >= 70:
		bucket = "high"
	case winProbability >= 50:
		bucket = "medium"
	}
	candidates := strategies[bucket]
	bestStrategy := candidates[intn(len(candidates))]

	var riskFactors []string
	if winProbability < 60 {
		riskFactors = append(riskFactors, "Weak evidence")
	}
	if strings.Contains(caseLower, "complex") {
		riskFactors = append(riskFactors, "Legal complexity")
	}
	if len(mem.PastCases) == 0 {
		riskFactors = append(riskFactors, "No case history")
	}
	if len(riskFactors) == 0 {
		riskFactors = []string{"Standard legal risks"}
	}

	duration := defaultDuration
	for _, entry := range durationTable {
		if strings.Contains(caseLower, entry.keyword) {
			duration = entry.duration
			break
		}
	}

	confidence := "low"
	switch {
	case winProbability > 70:
		confidence = "high"
	case winProbability >= 40:
		confidence = "medium"
	}

	similar := 0
	for _, c := range mem.PastCases {
		if Similarity(caseText, c.Description) > similarityThreshold {
			similar++
		}
	}

	return Outcome{
		WinProbability:    winProbability,
		BestStrategy:      bestStrategy,
		RiskFactors:       riskFactors,
		EstimatedDuration: duration,
		ConfidenceLevel:   confidence,
		SimilarCases:      similar,
	}
}

// Similarity is the Jaccard index over lowercase whitespace-split token
// sets: |A ∩ B| / |A ∪ B|, and 0 when either set is empty.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = struct{}{}
	}
	return set
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
