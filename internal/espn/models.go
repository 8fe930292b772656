package espn

// Raw shapes of the ESPN Fantasy v3 API responses this client consumes.

type leagueResponse struct {
	ID              int          `json:"id"`
	ScoringPeriodID int          `json:"scoringPeriodId"`
	SeasonID        int          `json:"seasonId"`
	Status          statusRaw    `json:"status"`
	Teams           []teamRaw    `json:"teams"`
	Schedule        []matchupRaw `json:"schedule"`
}

type statusRaw struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type teamRaw struct {
	ID           int           `json:"id"`
	Abbreviation string        `json:"abbrev"`
	Name         string        `json:"name"`
	Logo         string        `json:"logo"`
	Record       teamRecordRaw `json:"record"`
	Transactions txCounterRaw  `json:"transactionCounter"`
}

type teamRecordRaw struct {
	Overall recordDetailsRaw `json:"overall"`
}

type recordDetailsRaw struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type txCounterRaw struct {
	AcquisitionBudgetSpent float64 `json:"acquisitionBudgetSpent"`
}

type matchupRaw struct {
	ID            int          `json:"id"`
	MatchupPeriod int          `json:"matchupPeriodId"`
	Winner        string       `json:"winner"`
	Home          sideScoreRaw `json:"home"`
	Away          sideScoreRaw `json:"away"`
}

type sideScoreRaw struct {
	TeamID      int     `json:"teamId"`
	TotalPoints float64 `json:"totalPoints"`
}
