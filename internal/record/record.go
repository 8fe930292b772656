// Package record holds the win-loss-tie triple used throughout the
// standings pipeline and the arithmetic defined on it.
package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a wins/losses/ties triple. Combining two records is
// element-wise addition; there is no subtraction.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Parse extracts up to three non-negative integers from a "W-L-T"-shaped
// string. Missing trailing components default to 0. Malformed or empty
// input yields the zero Record; Parse never fails.
func Parse(s string) Record {
	var nums []int
	field := strings.Builder{}
	flush := func() {
		if field.Len() == 0 {
			return
		}
		n, err := strconv.Atoi(field.String())
		if err == nil && len(nums) < 3 {
			nums = append(nums, n)
		}
		field.Reset()
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			field.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	var rec Record
	if len(nums) > 0 {
		rec.Wins = nums[0]
	}
	if len(nums) > 1 {
		rec.Losses = nums[1]
	}
	if len(nums) > 2 {
		rec.Ties = nums[2]
	}
	return rec
}

// Combine returns the element-wise sum of a and b.
func Combine(a, b Record) Record {
	return Record{
		Wins:   a.Wins + b.Wins,
		Losses: a.Losses + b.Losses,
		Ties:   a.Ties + b.Ties,
	}
}

// Games is the total number of games counted toward this record.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// String renders the record in "W-L-T" form.
func (r Record) String() string {
	return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
}

// WinPct is (wins + 0.5*ties) / games, rounded to 2 decimal places,
// or 0.0 when no games have been played.
func (r Record) WinPct() float64 {
	games := r.Games()
	if games == 0 {
		return 0.0
	}
	pct := (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(games)
	return math.Round(pct*100) / 100
}
