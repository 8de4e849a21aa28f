package analysis

import "fmt"

// Pair is one fixed metric relationship: points per game (Y) against a metric (X).
type Pair struct {
	Selector string `json:"selector"`
	Route    string `json:"route"`
	Label    string `json:"label"`
	X        string `json:"x_column"`
	Y        string `json:"y_column"`
}

// Title is the plot title for the pair.
func (p Pair) Title() string { return "Points Per Game vs " + p.Label }

// PairColumns names the source columns for each role.
type PairColumns struct {
	PPG, PassTouchdowns, RushTouchdowns, TotalYards, Turnovers string
}

// Pairs returns the four supported pairs in display order.
func Pairs(c PairColumns) []Pair {
	return []Pair{
		{Selector: "pass-touchdowns", Route: "ppg-vs-pass-tds", Label: "Pass Touchdowns", X: c.PassTouchdowns, Y: c.PPG},
		{Selector: "rush-touchdowns", Route: "ppg-vs-rush-tds", Label: "Rushing Touchdowns", X: c.RushTouchdowns, Y: c.PPG},
		{Selector: "total-yards", Route: "ppg-vs-total-yds", Label: "Total Yards", X: c.TotalYards, Y: c.PPG},
		{Selector: "turnovers", Route: "ppg-vs-turnovers", Label: "Turnover Margin", X: c.Turnovers, Y: c.PPG},
	}
}

// UnknownPairError is returned for a selector outside the fixed enumeration.
type UnknownPairError struct {
	Selector string
}

func (e *UnknownPairError) Error() string {
	return fmt.Sprintf("unknown metric pair %q", e.Selector)
}

// LookupPair finds a pair by selector or legacy route slug.
func LookupPair(pairs []Pair, key string) (Pair, error) {
	for _, p := range pairs {
		if p.Selector == key || p.Route == key {
			return p, nil
		}
	}
	return Pair{}, &UnknownPairError{Selector: key}
}
