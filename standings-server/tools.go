package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"ff-standings-mcp/internal/config"
	"ff-standings-mcp/internal/espn"
	"ff-standings-mcp/internal/median"
	"ff-standings-mcp/internal/model"
	"ff-standings-mcp/internal/report"
	"ff-standings-mcp/internal/standings"
	"ff-standings-mcp/internal/store"
)

// MedianRecordRow is one team's median tally in the median_records tool
// output.
type MedianRecordRow struct {
	TeamID int    `json:"team_id"`
	Team   string `json:"team"`
	Record string `json:"record"`
}

// newSource builds an ESPN client for a tool call, with per-call
// league/year overrides falling back to the server configuration.
func newSource(cfg config.Config, leagueID, year int) (*espn.Client, error) {
	if leagueID == 0 {
		leagueID = cfg.LeagueID
	}
	if year == 0 {
		year = cfg.Year
	}
	if leagueID == 0 {
		return nil, fmt.Errorf("league_id is required (no server default configured)")
	}
	return espn.NewClient(store.NewJSONStore(cfg.RawRoot), leagueID, year, cfg.SWID, cfg.ESPNS2), nil
}

func buildStandings(ctx context.Context, cfg config.Config, args StandingsArgs) ([]report.Row, error) {
	src, err := newSource(cfg, args.LeagueID, args.Year)
	if err != nil {
		return nil, err
	}
	external := report.LoadExternal(log.Logger, cfg.ExternalFile)
	return report.Generate(ctx, log.Logger, src, external, cfg.Table())
}

func buildMedianRecords(ctx context.Context, cfg config.Config, args StandingsArgs) ([]MedianRecordRow, error) {
	src, err := newSource(cfg, args.LeagueID, args.Year)
	if err != nil {
		return nil, err
	}

	teams, err := src.Teams(ctx)
	if err != nil {
		return nil, err
	}
	currentWeek, err := src.CurrentWeek(ctx)
	if err != nil {
		return nil, err
	}
	if currentWeek > median.MaxWeeks {
		currentWeek = median.MaxWeeks
	}

	teamIDs := make([]int, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	weeks := make([][]model.Matchup, 0, currentWeek)
	for week := 1; week <= currentWeek; week++ {
		matchups, err := src.Matchups(ctx, week)
		if err != nil {
			log.Warn().Int("week", week).Err(err).Msg("skipping week")
			continue
		}
		weeks = append(weeks, matchups)
	}

	tally := median.Compute(weeks, teamIDs)

	rows := make([]MedianRecordRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, MedianRecordRow{
			TeamID: t.ID,
			Team:   t.Name,
			Record: tally[t.ID].String(),
		})
	}
	return rows, nil
}

func lookupTeam(ctx context.Context, cfg config.Config, args TeamLookupArgs) (report.Row, error) {
	rows, err := buildStandings(ctx, cfg, StandingsArgs{LeagueID: args.LeagueID, Year: args.Year})
	if err != nil {
		return report.Row{}, err
	}

	key := standings.NormalizeKey(args.Team)
	for _, row := range rows {
		if standings.NormalizeKey(row.Team) == key {
			return row, nil
		}
	}
	return report.Row{}, fmt.Errorf("team not found: %s", args.Team)
}
