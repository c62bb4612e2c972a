// File: rank.go
// Title: Closest Failure Ranking
// Description: Selects the failed chains most likely meant by the user
//              when no chain matched.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	"sort"
)

// RankClosest keeps the failures with the highest severity, then those
// that progressed furthest, ordered best chain first
func RankClosest(failures []MatchOutcome) []MatchOutcome {
	if len(failures) == 0 {
		return nil
	}

	maxSeverity := -1
	for _, f := range failures {
		if sev := f.Failure.Severity(); sev > maxSeverity {
			maxSeverity = sev
		}
	}
	maxIndex := -1
	for _, f := range failures {
		if f.Failure.Severity() == maxSeverity && f.Failure.Index > maxIndex {
			maxIndex = f.Failure.Index
		}
	}

	var ranked []MatchOutcome
	for _, f := range failures {
		if f.Failure.Severity() == maxSeverity && f.Failure.Index == maxIndex {
			ranked = append(ranked, f)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return compareChains(ranked[i].Chain, ranked[j].Chain) > 0
	})
	return ranked
}

// best returns the success with the highest chain order; the first wins ties
func best(successes []MatchOutcome) MatchOutcome {
	winner := successes[0]
	for _, o := range successes[1:] {
		if compareChains(o.Chain, winner.Chain) > 0 {
			winner = o
		}
	}
	return winner
}
