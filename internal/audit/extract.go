package audit

import (
	"fmt"
	"sort"
)

const (
	// Audits scoring at or above this are considered healthy and skipped.
	problemScoreCeiling = 0.9

	opportunityType = "opportunity"

	// Fallback actions use at most this many runes of the raw description.
	maxFallbackActionRunes = 150
)

// Recommendation is one ranked improvement opportunity. The JSON shape is
// exactly what the speed_logs recommendations column stores.
type Recommendation struct {
	Title        string  `json:"title"`
	Action       string  `json:"action"`
	DisplayValue string  `json:"display_value"`
	SavingsMs    float64 `json:"savings_ms"`
	SavingsBytes float64 `json:"savings_bytes"`
}

// Extract filters an audit list down to actionable opportunities and ranks
// them by estimated savings, biggest first. An audit qualifies when its score
// is present and below 0.9 and it is either tagged as an opportunity or
// carries a savings estimate. Pure function: same input, same output.
func Extract(audits List) []Recommendation {
	type scored struct {
		rec     Recommendation
		savings float64
	}
	matches := make([]scored, 0, len(audits))

	for _, entry := range audits {
		rec := entry.Record
		if rec.Score == nil || *rec.Score >= problemScoreCeiling {
			continue
		}

		var details Details
		if rec.Details != nil {
			details = *rec.Details
		}
		isOpportunity := details.Type == opportunityType
		hasSavings := details.OverallSavingsMs != nil || details.OverallSavingsBytes != nil
		if !isOpportunity && !hasSavings {
			continue
		}

		var savingsMs, savingsBytes float64
		if details.OverallSavingsMs != nil {
			savingsMs = *details.OverallSavingsMs
		}
		if details.OverallSavingsBytes != nil {
			savingsBytes = *details.OverallSavingsBytes
		}

		title := rec.Title
		action := truncateRunes(rec.Description, maxFallbackActionRunes)
		if tr, ok := translations[entry.ID]; ok {
			title = tr.Title
			action = tr.Action
		}
		if title == "" {
			title = "Unknown recommendation"
		}
		action += savingsSuffix(savingsMs, savingsBytes)

		matches = append(matches, scored{
			rec: Recommendation{
				Title:        title,
				Action:       action,
				DisplayValue: rec.DisplayValue,
				SavingsMs:    savingsMs,
				SavingsBytes: savingsBytes,
			},
			// Bytes fold into the ranking as a rough millisecond
			// equivalent. The /1000 divisor is an ordering heuristic,
			// not a unit conversion.
			savings: savingsMs + savingsBytes/1000,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].savings > matches[j].savings
	})

	out := make([]Recommendation, len(matches))
	for i, m := range matches {
		out[i] = m.rec
	}
	return out
}

// savingsSuffix renders the annotation appended to an action. Millisecond
// savings win over byte savings; zero savings add nothing.
func savingsSuffix(savingsMs, savingsBytes float64) string {
	switch {
	case savingsMs > 0:
		return fmt.Sprintf(" (~%dms saved)", int(savingsMs))
	case savingsBytes > 0:
		return fmt.Sprintf(" (~%dKB saved)", int(savingsBytes/1024))
	default:
		return ""
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
