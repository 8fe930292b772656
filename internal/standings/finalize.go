package standings

import (
	"sort"
	"strings"
)

// NormalizeKey lowercases, trims, and strips every character that is not
// an ASCII letter or digit. It is the matching key used both for the
// external merge and for writing ranks back after the final sort.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Finalize recomputes win percentage from each row's overall record,
// determines the league leader, fills in games-behind, and re-ranks the
// table. The input is not mutated; rows come back in their original
// order with only the derived fields changed.
//
// The leader is the row with the most overall wins, ties broken by
// higher points-for, then by fewer overall losses. Games-behind is
// ((leaderWins - wins) + (losses - leaderLosses)) / 2 rounded to one
// decimal; a negative value is kept as-is. Ranks are assigned 1..N from
// a stable sort descending on (overall wins, points-for) — rows equal on
// both keys keep their relative order, with no further tie-break.
func Finalize(snaps []TeamSnapshot) []TeamSnapshot {
	out := make([]TeamSnapshot, len(snaps))
	copy(out, snaps)
	if len(out) == 0 {
		return out
	}

	for i := range out {
		out[i].WinPct = out[i].Overall.WinPct()
	}

	leader := out[0]
	for _, s := range out[1:] {
		if leads(s, leader) {
			leader = s
		}
	}

	for i := range out {
		if out[i].TeamID == leader.TeamID && out[i].Name == leader.Name {
			out[i].GamesBehind = 0
			continue
		}
		gb := (float64(leader.Overall.Wins-out[i].Overall.Wins) +
			float64(out[i].Overall.Losses-leader.Overall.Losses)) / 2
		out[i].GamesBehind = Round1(gb)
	}

	ranked := make([]TeamSnapshot, len(out))
	copy(ranked, out)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Overall.Wins != ranked[j].Overall.Wins {
			return ranked[i].Overall.Wins > ranked[j].Overall.Wins
		}
		return ranked[i].PointsFor > ranked[j].PointsFor
	})

	rankByKey := make(map[string]int, len(ranked))
	for i, s := range ranked {
		key := NormalizeKey(s.Name)
		if _, taken := rankByKey[key]; !taken {
			rankByKey[key] = i + 1
		}
	}
	for i := range out {
		out[i].Rank = rankByKey[NormalizeKey(out[i].Name)]
	}

	return out
}

// leads reports whether a outranks b for leader determination: most
// overall wins, then higher points-for, then fewer overall losses.
func leads(a, b TeamSnapshot) bool {
	if a.Overall.Wins != b.Overall.Wins {
		return a.Overall.Wins > b.Overall.Wins
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	return a.Overall.Losses < b.Overall.Losses
}
