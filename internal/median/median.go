// Package median derives the supplemental per-team win/loss record based
// on each team's weekly score versus the league-wide median for that week.
package median

import (
	"sort"

	"ff-standings-mcp/internal/model"
	"ff-standings-mcp/internal/record"
)

// MaxWeeks caps how many weeks of the season are scanned for median
// records, regardless of league length.
const MaxWeeks = 14

// Compute tallies a median win/loss record for every team across the
// given weeks, processed in order. Each week, every non-nil score is
// collected, the median is taken, and each side that played is credited
// a median win when its score is at or above the median, otherwise a
// median loss. Ties are never awarded. A week with no available scores
// changes nothing. Results are cumulative across all weeks.
func Compute(weeks [][]model.Matchup, teamIDs []int) map[int]record.Record {
	tally := make(map[int]record.Record, len(teamIDs))
	for _, id := range teamIDs {
		tally[id] = record.Record{}
	}

	if len(weeks) > MaxWeeks {
		weeks = weeks[:MaxWeeks]
	}

	for _, matchups := range weeks {
		scores := make([]float64, 0, len(matchups)*2)
		for _, m := range matchups {
			if m.HomeScore != nil {
				scores = append(scores, *m.HomeScore)
			}
			if m.AwayScore != nil {
				scores = append(scores, *m.AwayScore)
			}
		}
		if len(scores) == 0 {
			continue
		}

		med := medianOf(scores)

		for _, m := range matchups {
			if m.HomeTeamID != 0 && m.HomeScore != nil {
				tally[m.HomeTeamID] = credit(tally[m.HomeTeamID], *m.HomeScore, med)
			}
			if m.AwayTeamID != 0 && m.AwayScore != nil {
				tally[m.AwayTeamID] = credit(tally[m.AwayTeamID], *m.AwayScore, med)
			}
		}
	}

	return tally
}

// medianOf returns the median of a non-empty score list: the middle value
// for an odd count, the mean of the two middle values for an even count.
func medianOf(scores []float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func credit(r record.Record, score, median float64) record.Record {
	if score >= median {
		r.Wins++
	} else {
		r.Losses++
	}
	return r
}
