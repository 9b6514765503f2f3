package domain

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// Scoring weights
	scoreExactMatch     = 100.0
	scorePrefixMatch    = 75.0
	scoreSubstringMatch = 50.0

	// Exact serviceName match bonus (huge boost)
	scoreExactNameBonus = 200.0

	// Capability matches rank below name matches
	scoreCapabilityWeight = 0.6

	// Earlier substring matches score higher
	scorePositionBonus = 10.0
)

// SearchQuery is a parsed free-text catalog lookup.
type SearchQuery struct {
	Raw       string
	Fragments []string // normalized, whitespace-separated
}

// ParseSearchQuery normalizes user input into fragments.
// Example: "Chitty Trust scoring" -> ["chitty", "trust", "scoring"]
func ParseSearchQuery(input string) *SearchQuery {
	input = strings.TrimSpace(strings.ToLower(input))
	q := &SearchQuery{Raw: input}
	if input == "" {
		return q
	}
	q.Fragments = splitAndClean(input)
	return q
}

// splitAndClean splits on whitespace and drops empty parts.
func splitAndClean(s string) []string {
	parts := strings.Fields(s)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// normalizeFragment strips everything but letters and digits.
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// SearchCandidate pairs a record with its match score.
type SearchCandidate struct {
	Record *ServiceRecord
	Score  float64
}

// ScoreRecord computes how well a record matches the query.
// Zero means no match at all.
func ScoreRecord(query *SearchQuery, rec *ServiceRecord) float64 {
	if query == nil || rec == nil || len(query.Fragments) == 0 {
		return 0.0
	}

	name := strings.ToLower(rec.ServiceName)
	display := splitAndClean(strings.ToLower(rec.DisplayName))

	// Exact serviceName hit on a single-fragment query wins outright.
	if len(query.Fragments) == 1 && query.Fragments[0] == name {
		return scoreExactMatch + scoreExactNameBonus
	}

	var total float64
	for _, frag := range query.Fragments {
		best := scoreFragment(frag, name)
		for _, word := range display {
			if s := scoreFragment(frag, word); s > best {
				best = s
			}
		}
		for _, cap := range rec.Capabilities {
			if s := scoreFragment(frag, strings.ToLower(cap)) * scoreCapabilityWeight; s > best {
				best = s
			}
		}
		total += best
	}

	return total
}

// scoreFragment scores one query fragment against one target token.
func scoreFragment(queryFrag, target string) float64 {
	queryFrag = normalizeFragment(queryFrag)
	target = normalizeFragment(target)

	if queryFrag == "" || target == "" {
		return 0.0
	}

	if queryFrag == target {
		return scoreExactMatch
	}

	if strings.HasPrefix(target, queryFrag) {
		return scorePrefixMatch
	}

	if idx := strings.Index(target, queryFrag); idx >= 0 {
		// Earlier substring matches get higher score
		bonus := scorePositionBonus * (1.0 - float64(idx)/float64(len(target)))
		return scoreSubstringMatch + bonus
	}

	return 0.0
}

// RankRecords scores records against the query and returns matching
// candidates sorted by descending score. Zero-score records are dropped.
func RankRecords(query *SearchQuery, records []*ServiceRecord) []*SearchCandidate {
	candidates := make([]*SearchCandidate, 0, len(records))

	for _, rec := range records {
		score := ScoreRecord(query, rec)
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, &SearchCandidate{Record: rec, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}
