// Package standings assembles per-team report rows and finalizes the
// league table: win percentage, leader, games-behind, and rank.
package standings

import (
	"math"

	"ff-standings-mcp/internal/model"
	"ff-standings-mcp/internal/record"
)

// StartingBudget is the acquisition budget every team begins the
// season with.
const StartingBudget = 100.0

// TeamSnapshot is one row of the report. Rank and GamesBehind hold zero
// placeholders until Finalize assigns them.
type TeamSnapshot struct {
	TeamID        int
	Name          string
	Logo          string
	Rank          int
	Matchup       record.Record
	Median        record.Record
	Overall       record.Record
	WinPct        float64
	PointsFor     float64
	PointsAgainst float64
	GamesBehind   float64
	Budget        float64
}

// BuildSnapshot assembles a report row for one team. The matchup record
// is taken verbatim from the source; the overall record is the
// element-wise sum of matchup and median records. Budget validation is
// out of scope: overspends pass through as negative remainders.
func BuildSnapshot(t model.Team, median record.Record) TeamSnapshot {
	matchup := record.Record{Wins: t.Wins, Losses: t.Losses, Ties: t.Ties}
	overall := record.Combine(matchup, median)
	return TeamSnapshot{
		TeamID:        t.ID,
		Name:          t.Name,
		Logo:          t.Logo,
		Matchup:       matchup,
		Median:        median,
		Overall:       overall,
		WinPct:        overall.WinPct(),
		PointsFor:     Round2(t.PointsFor),
		PointsAgainst: Round2(t.PointsAgainst),
		Budget:        StartingBudget - t.BudgetSpent,
	}
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
