package match

import (
	"sort"

	"source-composer/internal/common"
)

// DefaultMinScore is the minimum similarity for a candidate to be suggested.
const DefaultMinScore = 0.6

// Candidate is a known identity scored against an unresolved name.
type Candidate struct {
	Identity string
	Score    float64
	order    int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known identity against name, comparing the
// unresolved name with both the full identity and its local name.
// Returns candidates sorted by score (descending), ties in input order.
func RankCandidates(name string, identities []string) CandidateList {
	candidates := make(CandidateList, 0, len(identities))

	for i, id := range identities {
		score := max(IdentSimilarity(name, id), IdentSimilarity(name, common.LocalName(id)))
		candidates = append(candidates, Candidate{Identity: id, Score: score, order: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}

		return candidates[i].order < candidates[j].order
	})

	return candidates
}

// Top returns at most n candidates scoring at least minScore.
func (c CandidateList) Top(n int, minScore float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if len(out) >= n {
			break
		}

		if cand.Score < minScore {
			break
		}

		out = append(out, cand)
	}

	return out
}

// Suggest returns up to n identities that look like name, best first.
// An exact match is never suggested.
func Suggest(name string, identities []string, n int) []string {
	if n <= 0 {
		return nil
	}

	var out []string

	for _, cand := range RankCandidates(name, identities).Top(n+1, DefaultMinScore) {
		if cand.Identity == name || len(out) == n {
			continue
		}

		out = append(out, cand.Identity)
	}

	return out
}
