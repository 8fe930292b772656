// Package report runs the standings pipeline end to end and writes the
// report artifact: source data -> median records -> snapshots ->
// external merge -> finalized table -> JSON array.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"ff-standings-mcp/internal/median"
	"ff-standings-mcp/internal/merge"
	"ff-standings-mcp/internal/model"
	"ff-standings-mcp/internal/standings"
)

// Source supplies league data. The ESPN client implements it; tests
// inject fakes so the pipeline runs without a network.
type Source interface {
	Teams(ctx context.Context) ([]model.Team, error)
	CurrentWeek(ctx context.Context) (int, error)
	Matchups(ctx context.Context, week int) ([]model.Matchup, error)
}

// Row is one finalized report entry in the artifact's display form.
// Records render as "W-L-T" text only here, at the output boundary.
type Row struct {
	Rank          int     `json:"Rank"`
	Team          string  `json:"Team"`
	Overall       string  `json:"Overall Record"`
	WinPct        float64 `json:"Win %"`
	Matchup       string  `json:"Matchup Record"`
	Median        string  `json:"Median Score Record"`
	GamesBehind   float64 `json:"GB"`
	PointsFor     float64 `json:"PF"`
	PointsAgainst float64 `json:"PA"`
	Budget        float64 `json:"Acquisition Budget"`
	Logo          string  `json:"Team Logo,omitempty"`
}

// Generate runs one full computation pass and returns the finalized
// rows. Weeks whose data is not published yet are skipped, never fatal;
// they are picked up by a later run. Nothing is retained between runs.
func Generate(ctx context.Context, log zerolog.Logger, src Source, external []merge.ExternalRow, tbl merge.Table) ([]Row, error) {
	teams, err := src.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("league has no teams")
	}

	currentWeek, err := src.CurrentWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current week: %w", err)
	}
	lastWeek := currentWeek
	if lastWeek > median.MaxWeeks {
		lastWeek = median.MaxWeeks
	}

	teamIDs := make([]int, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	weeks := make([][]model.Matchup, 0, lastWeek)
	for week := 1; week <= lastWeek; week++ {
		matchups, err := src.Matchups(ctx, week)
		if err != nil {
			log.Warn().Int("week", week).Err(err).Msg("skipping week")
			continue
		}
		weeks = append(weeks, matchups)
	}

	tally := median.Compute(weeks, teamIDs)

	snaps := make([]standings.TeamSnapshot, 0, len(teams))
	for _, t := range teams {
		snaps = append(snaps, standings.BuildSnapshot(t, tally[t.ID]))
	}

	if len(external) > 0 {
		before := len(snaps)
		snaps = merge.Merge(snaps, external, tbl)
		log.Info().
			Int("external_rows", len(external)).
			Int("appended", len(snaps)-before).
			Msg("merged external results")
	}

	final := standings.Finalize(snaps)

	rows := make([]Row, 0, len(final))
	for _, s := range final {
		rows = append(rows, Row{
			Rank:          s.Rank,
			Team:          s.Name,
			Overall:       s.Overall.String(),
			WinPct:        s.WinPct,
			Matchup:       s.Matchup.String(),
			Median:        s.Median.String(),
			GamesBehind:   s.GamesBehind,
			PointsFor:     s.PointsFor,
			PointsAgainst: s.PointsAgainst,
			Budget:        s.Budget,
			Logo:          s.Logo,
		})
	}
	return rows, nil
}

// LoadExternal reads the external partial-season results file. A
// missing or unparsable file is not an error: the run proceeds on
// primary-source data alone.
func LoadExternal(log zerolog.Logger, path string) []merge.ExternalRow {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("external results unavailable, proceeding without")
		return nil
	}
	var rows []merge.ExternalRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("external results unparsable, proceeding without")
		return nil
	}
	return rows
}

// WriteReport writes the artifact. The file only appears once the whole
// computation has succeeded; a failed run writes nothing.
func WriteReport(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
