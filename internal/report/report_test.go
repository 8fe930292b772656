package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ff-standings-mcp/internal/merge"
	"ff-standings-mcp/internal/model"
)

// ---------------------------------------------------------------------------
// Fake source
// ---------------------------------------------------------------------------

type fakeSource struct {
	teams       []model.Team
	currentWeek int
	byWeek      map[int][]model.Matchup
}

func (f *fakeSource) Teams(ctx context.Context) ([]model.Team, error) { return f.teams, nil }

func (f *fakeSource) CurrentWeek(ctx context.Context) (int, error) { return f.currentWeek, nil }

func (f *fakeSource) Matchups(ctx context.Context, week int) ([]model.Matchup, error) {
	m, ok := f.byWeek[week]
	if !ok {
		return nil, fmt.Errorf("week %d not published", week)
	}
	return m, nil
}

func score(v float64) *float64 { return &v }

func pairing(week, homeID int, home float64, awayID int, away float64) model.Matchup {
	return model.Matchup{
		Week:       week,
		HomeTeamID: homeID, HomeScore: score(home),
		AwayTeamID: awayID, AwayScore: score(away),
	}
}

func nop() zerolog.Logger { return zerolog.Nop() }

// ---------------------------------------------------------------------------
// Generate
// ---------------------------------------------------------------------------

func TestGenerate_EndToEndStandings(t *testing.T) {
	// A and B both 5-3-0 head to head. Eight weeks of scores, with two
	// filler teams shaping each week's median, give A a 3-5 median
	// record and B a 4-4 one: overall A 8-8-0, B 9-7-0.
	src := &fakeSource{
		teams: []model.Team{
			{ID: 1, Name: "A", Wins: 5, Losses: 3, PointsFor: 500},
			{ID: 2, Name: "B", Wins: 5, Losses: 3, PointsFor: 480},
			{ID: 3, Name: "C", PointsFor: 400},
			{ID: 4, Name: "D", PointsFor: 390},
		},
		currentWeek: 8,
		byWeek:      map[int][]model.Matchup{},
	}
	// Each week's four scores sort around a median of 100.
	type weekScores struct{ a, b, c, d float64 }
	schedule := []weekScores{
		{130, 120, 80, 70}, // A and B above the median
		{130, 120, 80, 70},
		{130, 120, 80, 70},
		{80, 120, 130, 70}, // B above, A below
		{80, 70, 130, 120}, // both below
		{80, 70, 130, 120},
		{80, 70, 130, 120},
		{80, 70, 130, 120},
	}
	for i, ws := range schedule {
		week := i + 1
		src.byWeek[week] = []model.Matchup{
			pairing(week, 1, ws.a, 3, ws.c),
			pairing(week, 2, ws.b, 4, ws.d),
		}
	}

	rows, err := Generate(context.Background(), nop(), src, nil, merge.DefaultTable())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	a, b := rows[0], rows[1]
	assert.Equal(t, "8-8-0", a.Overall)
	assert.Equal(t, "9-7-0", b.Overall)
	assert.Equal(t, "3-5-0", a.Median)
	assert.Equal(t, "4-4-0", b.Median)

	// B leads on overall wins; GB for A = ((9-8)+(8-7))/2 = 1.0.
	assert.Equal(t, 0.0, b.GamesBehind)
	assert.Equal(t, 1.0, a.GamesBehind)
	assert.Equal(t, 1, b.Rank)
	assert.Equal(t, 2, a.Rank)
	assert.Equal(t, 0.5, a.WinPct)
	assert.Equal(t, 0.56, b.WinPct)
}

func TestGenerate_UnpublishedWeeksSkipped(t *testing.T) {
	src := &fakeSource{
		teams: []model.Team{
			{ID: 1, Name: "A", Wins: 1},
			{ID: 2, Name: "B", Losses: 1},
		},
		currentWeek: 3,
		byWeek: map[int][]model.Matchup{
			1: {pairing(1, 1, 110, 2, 90)},
			// weeks 2 and 3 not published
		},
	}

	rows, err := Generate(context.Background(), nop(), src, nil, merge.DefaultTable())
	require.NoError(t, err)

	assert.Equal(t, "1-0-0", rows[0].Median, "only the published week counts")
	assert.Equal(t, "0-1-0", rows[1].Median)
}

func TestGenerate_MergesExternalRows(t *testing.T) {
	src := &fakeSource{
		teams:       []model.Team{{ID: 1, Name: "Carryover Champs", Wins: 2, Losses: 1, PointsFor: 300}},
		currentWeek: 1,
		byWeek:      map[int][]model.Matchup{},
	}
	external := []merge.ExternalRow{
		{"Team": "Carryover Champs", "Matchup Record": "1-0-0", "Overall Record": "1-0-0", "PF": 100.0},
		{"Team": "Ghost Team", "Overall Record": "0-3-0"},
	}

	rows, err := Generate(context.Background(), nop(), src, external, merge.DefaultTable())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "3-1-0", rows[0].Overall)
	assert.Equal(t, 400.0, rows[0].PointsFor)
	assert.Equal(t, "Ghost Team", rows[1].Team)
	assert.Equal(t, 2, rows[1].Rank)
}

// ---------------------------------------------------------------------------
// LoadExternal
// ---------------------------------------------------------------------------

func TestLoadExternal_MissingFileIsEmpty(t *testing.T) {
	assert.Nil(t, LoadExternal(nop(), filepath.Join(t.TempDir(), "absent.json")))
	assert.Nil(t, LoadExternal(nop(), ""))
}

func TestLoadExternal_UnparsableFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Nil(t, LoadExternal(nop(), path))
}

func TestLoadExternal_ReadsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Team":"A","PF":12.5}]`), 0o644))

	rows := LoadExternal(nop(), path)

	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0]["Team"])
}

// ---------------------------------------------------------------------------
// WriteReport
// ---------------------------------------------------------------------------

func TestWriteReport_ArtifactShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "LeagueData.json")
	rows := []Row{{
		Rank: 1, Team: "A", Overall: "8-8-0", WinPct: 0.5,
		Matchup: "5-3-0", Median: "3-5-0",
		GamesBehind: 0, PointsFor: 500.25, PointsAgainst: 480,
		Budget: 88, Logo: "https://img.example/a.png",
	}}

	require.NoError(t, WriteReport(path, rows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), raw[len(raw)-1])

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)

	for _, key := range []string{
		"Rank", "Team", "Overall Record", "Win %", "Matchup Record",
		"Median Score Record", "GB", "PF", "PA", "Acquisition Budget", "Team Logo",
	} {
		assert.Contains(t, decoded[0], key)
	}
	assert.Equal(t, 1.0, decoded[0]["Rank"])
	assert.Equal(t, "8-8-0", decoded[0]["Overall Record"])
}

func TestWriteReport_LogoOmittedWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LeagueData.json")
	require.NoError(t, WriteReport(path, []Row{{Rank: 1, Team: "A"}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded[0], "Team Logo")
}
