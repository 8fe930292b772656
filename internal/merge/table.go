package merge

import (
	"strconv"
	"strings"

	"ff-standings-mcp/internal/record"
)

// Canonical field names for the external dataset.
const (
	FieldName          = "name"
	FieldID            = "id"
	FieldOverall       = "overall_record"
	FieldMatchup       = "matchup_record"
	FieldMedian        = "median_record"
	FieldPointsFor     = "points_for"
	FieldPointsAgainst = "points_against"
	FieldBudget        = "budget"
	FieldLogo          = "logo"
)

// Table maps each canonical field to the ordered list of external header
// spellings accepted for it. It is versioned configuration: the compiled
// defaults below can be replaced wholesale from the config file.
type Table map[string][]string

// DefaultTable returns the accepted header spellings for each canonical
// field, in lookup order.
func DefaultTable() Table {
	return Table{
		FieldName:          {"Team", "Team Name", "team", "name"},
		FieldID:            {"Team ID", "team_id", "id"},
		FieldOverall:       {"Overall Record", "Overall", "overall_record", "record"},
		FieldMatchup:       {"Matchup Record", "W/L Record", "matchup_record"},
		FieldMedian:        {"Median Score Record", "Median Record", "median_record"},
		FieldPointsFor:     {"PF", "Pts Scored", "Points For", "points_for"},
		FieldPointsAgainst: {"PA", "Pts Against", "Points Against", "points_against"},
		FieldBudget:        {"Acquisition Budget", "FAAB", "budget"},
		FieldLogo:          {"Team Logo", "Logo", "logo"},
	}
}

// Lookup finds the field's value under the first alias present in the
// row. Alias comparison ignores case and surrounding whitespace.
func (t Table) Lookup(row ExternalRow, field string) (any, bool) {
	for _, alias := range t[field] {
		if v, ok := row[alias]; ok {
			return v, true
		}
		for k, v := range row {
			if strings.EqualFold(strings.TrimSpace(k), alias) {
				return v, true
			}
		}
	}
	return nil, false
}

// Record parses the field as a "W-L-T" record, defaulting to the zero
// record when absent or malformed.
func (t Table) Record(row ExternalRow, field string) record.Record {
	v, ok := t.Lookup(row, field)
	if !ok {
		return record.Record{}
	}
	s, ok := v.(string)
	if !ok {
		return record.Record{}
	}
	return record.Parse(s)
}

// Number coerces the field to a float64; absent or non-numeric values
// become 0.0.
func (t Table) Number(row ExternalRow, field string) float64 {
	v, ok := t.Lookup(row, field)
	if !ok {
		return 0.0
	}
	return toNumber(v)
}

// Text returns the field as a string, or "" when absent.
func (t Table) Text(row ExternalRow, field string) string {
	v, ok := t.Lookup(row, field)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Name is the row's display name, "" when it has no usable one.
func (t Table) Name(row ExternalRow) string {
	return strings.TrimSpace(t.Text(row, FieldName))
}

// ID is the row's team identifier rendered as text.
func (t Table) ID(row ExternalRow) string {
	v, ok := t.Lookup(row, FieldID)
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.Itoa(int(id))
	case int:
		return strconv.Itoa(id)
	default:
		return ""
	}
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}
