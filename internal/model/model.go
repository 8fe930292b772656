// Package model holds the league domain types shared across the pipeline.
package model

// Team is one league team as reported by the data source.
type Team struct {
	ID            int
	Name          string
	Logo          string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	BudgetSpent   float64
}

// Matchup is one scored pairing for a given week. A nil score means the
// side has not played (or data is not published); that side is excluded
// from median computation and tallying for the week.
type Matchup struct {
	Week       int
	HomeTeamID int
	HomeScore  *float64
	AwayTeamID int
	AwayScore  *float64
}
