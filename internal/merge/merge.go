// Package merge reconciles computed team snapshots with an external
// partial-season results dataset. Matching is by normalized name or
// team id; matched fields are combined additively.
package merge

import (
	"strconv"

	"ff-standings-mcp/internal/record"
	"ff-standings-mcp/internal/standings"
)

// ExternalRow is one entry of the external results dataset: a loose
// mapping whose keys vary across recognized header spellings.
type ExternalRow map[string]any

// Merge folds the external rows into the snapshots and returns a new
// slice; neither input is mutated. For each external row the first still
// unmatched snapshot sharing a candidate key absorbs it: records combine
// element-wise and point totals add. A matched snapshot leaves the pool,
// so no row is merged twice in one pass. External rows matching nothing
// are appended, in file order, as new snapshot rows.
//
// The merge is additive by design: re-running it on its own output
// double-counts the external data. Callers invoke it exactly once per
// report generation.
func Merge(snaps []standings.TeamSnapshot, rows []ExternalRow, t Table) []standings.TeamSnapshot {
	out := make([]standings.TeamSnapshot, len(snaps))
	copy(out, snaps)

	// Appended rows are never matching candidates; only the original
	// snapshot pool is scanned, and each snapshot at most once.
	pool := len(snaps)
	matched := make([]bool, pool)

	for _, row := range rows {
		idx := findMatch(out[:pool], matched, row, t)
		if idx < 0 {
			out = append(out, newSnapshot(row, t))
			continue
		}
		matched[idx] = true
		out[idx] = absorb(out[idx], row, t)
	}

	return out
}

// findMatch returns the index of the first unmatched snapshot sharing a
// candidate key with the row, or -1.
func findMatch(snaps []standings.TeamSnapshot, matched []bool, row ExternalRow, t Table) int {
	rowKeys := candidateKeys(t.Name(row), t.ID(row))
	if len(rowKeys) == 0 {
		return -1
	}
	for i, s := range snaps {
		if matched[i] {
			continue
		}
		for _, sk := range candidateKeys(s.Name, strconv.Itoa(s.TeamID)) {
			for _, rk := range rowKeys {
				if sk == rk {
					return i
				}
			}
		}
	}
	return -1
}

// candidateKeys normalizes the display name and, failing that or in
// addition, the identifier. Empty keys are dropped.
func candidateKeys(name, id string) []string {
	keys := make([]string, 0, 2)
	if k := standings.NormalizeKey(name); k != "" {
		keys = append(keys, k)
	}
	if k := standings.NormalizeKey(id); k != "" && k != "0" {
		keys = append(keys, k)
	}
	return keys
}

// absorb combines one matched external row into a snapshot. Identity,
// logo, and budget stay untouched; records and points add.
func absorb(s standings.TeamSnapshot, row ExternalRow, t Table) standings.TeamSnapshot {
	s.Matchup = record.Combine(s.Matchup, t.Record(row, FieldMatchup))
	s.Median = record.Combine(s.Median, t.Record(row, FieldMedian))
	s.Overall = record.Combine(s.Overall, t.Record(row, FieldOverall))
	s.PointsFor = standings.Round2(s.PointsFor + t.Number(row, FieldPointsFor))
	s.PointsAgainst = standings.Round2(s.PointsAgainst + t.Number(row, FieldPointsAgainst))
	return s
}

// newSnapshot builds a snapshot row from an external row that matched no
// computed team. Absent fields default: rank unset, budget 100,
// points 0. When the row carries no overall record it is derived from
// the matchup and median records so the composite invariant holds.
func newSnapshot(row ExternalRow, t Table) standings.TeamSnapshot {
	matchup := t.Record(row, FieldMatchup)
	median := t.Record(row, FieldMedian)
	overall := t.Record(row, FieldOverall)
	if overall == (record.Record{}) {
		overall = record.Combine(matchup, median)
	}

	budget := standings.StartingBudget
	if v, ok := t.Lookup(row, FieldBudget); ok {
		budget = toNumber(v)
	}

	return standings.TeamSnapshot{
		Name:          t.Name(row),
		Logo:          t.Text(row, FieldLogo),
		Matchup:       matchup,
		Median:        median,
		Overall:       overall,
		WinPct:        overall.WinPct(),
		PointsFor:     standings.Round2(t.Number(row, FieldPointsFor)),
		PointsAgainst: standings.Round2(t.Number(row, FieldPointsAgainst)),
		Budget:        budget,
	}
}
