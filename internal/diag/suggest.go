package diag

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a typo suggestion.
const maxSuggestDistance = 2

// Suggest finds the candidate closest to name: first a case-insensitive
// subsequence match ("blu" -> "Blue"), then a near typo ("Sapwn" -> "Spawn").
func Suggest(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// SuggestNote formats the "did you mean" note, or returns "" when nothing fits.
func SuggestNote(name string, candidates []string) string {
	if s, ok := Suggest(name, candidates); ok && s != name {
		return "did you mean '" + s + "'?"
	}
	return ""
}
