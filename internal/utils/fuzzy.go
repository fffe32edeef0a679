package utils

import "strings"

// ChecklistMatch is the result of scoring a query against a set of checklist
// item texts. Index is -1 when the candidate list is empty.
type ChecklistMatch struct {
	Index    int
	Text     string
	Score    float64
	Accepted bool
}

// BestChecklistMatch finds the candidate closest to query. Scoring: an exact
// case-insensitive match scores 0 and short-circuits; if one string contains
// the other, the score is 0.1 per character of length difference; otherwise
// the score is the Levenshtein distance between the lower-cased strings.
// The lowest score wins and is accepted only when it does not exceed
// max(5, len(query)/2). The best candidate is returned even when rejected so
// callers can report what almost matched.
func BestChecklistMatch(candidates []string, query string) ChecklistMatch {
	best := ChecklistMatch{Index: -1}
	q := strings.ToLower(strings.TrimSpace(query))

	for i, candidate := range candidates {
		c := strings.ToLower(strings.TrimSpace(candidate))

		if c == q {
			return ChecklistMatch{Index: i, Text: candidate, Score: 0, Accepted: true}
		}

		var score float64
		if strings.Contains(c, q) || strings.Contains(q, c) {
			diff := len(c) - len(q)
			if diff < 0 {
				diff = -diff
			}
			score = 0.1 * float64(diff)
		} else {
			score = float64(Levenshtein(c, q))
		}

		if best.Index == -1 || score < best.Score {
			best = ChecklistMatch{Index: i, Text: candidate, Score: score}
		}
	}

	if best.Index == -1 {
		return best
	}

	threshold := float64(len(q)) * 0.5
	if threshold < 5 {
		threshold = 5
	}
	best.Accepted = best.Score <= threshold

	return best
}

// Levenshtein computes the edit distance between a and b with unit costs for
// insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			min := prev[j] + 1 // deletion
			if ins := curr[j-1] + 1; ins < min {
				min = ins // insertion
			}
			if sub := prev[j-1] + cost; sub < min {
				min = sub // substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
