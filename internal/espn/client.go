// Package espn fetches league and matchup data from the ESPN Fantasy v3
// read API. It is the data-source collaborator for the standings
// pipeline; raw responses are cached through the JSON store so repeat
// runs stay cheap.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ff-standings-mcp/internal/model"
	"ff-standings-mcp/internal/store"
)

// ErrWeekUnavailable marks a matchup week whose scores have not been
// published yet. The pipeline treats it as "skip this week", never as a
// fatal failure.
var ErrWeekUnavailable = fmt.Errorf("week data not yet available")

type Client struct {
	HTTP      *http.Client
	Store     *store.JSONStore
	BaseURL   string
	UserAgent string

	LeagueID int
	Year     int
	SWID     string
	ESPNS2   string

	Sleep        time.Duration
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool
}

func NewClient(st *store.JSONStore, leagueID, year int, swid, espnS2 string) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 20 * time.Second},
		Store:       st,
		BaseURL:     "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl",
		UserAgent:   "ff-standings/1.0",
		LeagueID:    leagueID,
		Year:        year,
		SWID:        swid,
		ESPNS2:      espnS2,
		Sleep:       250 * time.Millisecond,
		PrettyWrite: true,
		UseCache:    true,
	}
}

// fetchRaw downloads urlPath and writes it to relPath in the store.
// Returns raw bytes (from cache or network).
func (c *Client) fetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	if c.Sleep > 0 {
		time.Sleep(c.Sleep)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "SWID", Value: c.SWID})
	req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.ESPNS2})

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}

	if !c.DisableWrite {
		if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// league fetches the mTeam view: teams, overall records, points, budget.
func (c *Client) league(ctx context.Context, force bool) (*leagueResponse, error) {
	body, err := c.fetchRaw(ctx,
		fmt.Sprintf("/seasons/%d/segments/0/leagues/%d?view=mTeam", c.Year, c.LeagueID),
		fmt.Sprintf("league/%d/%d/mTeam.json", c.Year, c.LeagueID),
		force,
	)
	if err != nil {
		return nil, err
	}
	var resp leagueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode mTeam view: %w", err)
	}
	return &resp, nil
}

// scoreboard fetches the mMatchupScore view for one scoring period.
func (c *Client) scoreboard(ctx context.Context, week int, force bool) (*leagueResponse, error) {
	body, err := c.fetchRaw(ctx,
		fmt.Sprintf("/seasons/%d/segments/0/leagues/%d?view=mMatchupScore&scoringPeriodId=%d",
			c.Year, c.LeagueID, week),
		fmt.Sprintf("league/%d/%d/week/%d.json", c.Year, c.LeagueID, week),
		force,
	)
	if err != nil {
		return nil, err
	}
	var resp leagueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode mMatchupScore view: %w", err)
	}
	return &resp, nil
}

// Teams returns every league team with its head-to-head record, season
// point totals, and acquisition budget spent.
func (c *Client) Teams(ctx context.Context) ([]model.Team, error) {
	resp, err := c.league(ctx, false)
	if err != nil {
		return nil, err
	}
	teams := make([]model.Team, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		name := t.Name
		if name == "" {
			name = t.Abbreviation
		}
		teams = append(teams, model.Team{
			ID:            t.ID,
			Name:          name,
			Logo:          t.Logo,
			Wins:          t.Record.Overall.Wins,
			Losses:        t.Record.Overall.Losses,
			Ties:          t.Record.Overall.Ties,
			PointsFor:     t.Record.Overall.PointsFor,
			PointsAgainst: t.Record.Overall.PointsAgainst,
			BudgetSpent:   t.Transactions.AcquisitionBudgetSpent,
		})
	}
	return teams, nil
}

// CurrentWeek returns the league's current matchup period.
func (c *Client) CurrentWeek(ctx context.Context) (int, error) {
	resp, err := c.league(ctx, false)
	if err != nil {
		return 0, err
	}
	if resp.Status.CurrentMatchupPeriod == 0 {
		return 0, fmt.Errorf("currentMatchupPeriod missing in mTeam view")
	}
	return resp.Status.CurrentMatchupPeriod, nil
}

// Matchups returns the scored pairings for one week. An unplayed side
// carries a nil score. A week with no published matchups yields
// ErrWeekUnavailable so the caller can skip it.
func (c *Client) Matchups(ctx context.Context, week int) ([]model.Matchup, error) {
	resp, err := c.scoreboard(ctx, week, false)
	if err != nil {
		return nil, err
	}

	matchups := make([]model.Matchup, 0, len(resp.Schedule))
	for _, m := range resp.Schedule {
		if m.MatchupPeriod != week {
			continue
		}
		matchups = append(matchups, model.Matchup{
			Week:       week,
			HomeTeamID: m.Home.TeamID,
			HomeScore:  sideScore(m.Home, m.Winner),
			AwayTeamID: m.Away.TeamID,
			AwayScore:  sideScore(m.Away, m.Winner),
		})
	}
	if len(matchups) == 0 {
		return nil, fmt.Errorf("week %d: %w", week, ErrWeekUnavailable)
	}
	return matchups, nil
}

// sideScore maps one side's total to a nullable score. An undecided
// matchup with a zero total has not been played.
func sideScore(s sideScoreRaw, winner string) *float64 {
	if s.TeamID == 0 {
		return nil
	}
	if winner == "UNDECIDED" && s.TotalPoints == 0 {
		return nil
	}
	v := s.TotalPoints
	return &v
}
