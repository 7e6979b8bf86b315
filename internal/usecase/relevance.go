package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/storefront/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Score weights for a query against a product
const (
	titleCoverageWeight       = 0.60 // share of query tokens found in the title
	descriptionCoverageWeight = 0.25 // share of query tokens found in the description
	titleJaccardWeight        = 0.15 // overlap of query and title token sets
	titleSubstringBonus       = 10.0 // query appears verbatim in the title
)

// stopWords carry no signal when ranking product titles
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"it": true, "as": true, "be": true, "are": true,
	"new": true, "size": true, "pack": true, "set": true,
}

// RelevanceRanker orders search results against a free-text query
type RelevanceRanker struct {
	fuzzyEditDistance int
}

// NewRelevanceRanker creates a ranker. A non-positive edit distance disables fuzzy token matches.
func NewRelevanceRanker(fuzzyEditDistance int) *RelevanceRanker {
	if fuzzyEditDistance < 0 {
		fuzzyEditDistance = 0
	}
	return &RelevanceRanker{fuzzyEditDistance: fuzzyEditDistance}
}

// Sort puts exact title matches first, then orders by descending score.
// Equal-scoring products keep their input order.
func (r *RelevanceRanker) Sort(products []domain.Product, query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return
	}
	queryTokens := tokenize(q)

	type ranked struct {
		exact bool
		score float64
	}
	ranks := make([]ranked, len(products))
	for i := range products {
		ranks[i] = ranked{
			exact: strings.ToLower(strings.TrimSpace(products[i].Title)) == q,
			score: r.score(q, queryTokens, &products[i]),
		}
	}

	idx := make([]int, len(products))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := ranks[idx[a]], ranks[idx[b]]
		if ra.exact != rb.exact {
			return ra.exact
		}
		return ra.score > rb.score
	})

	ordered := make([]domain.Product, len(products))
	for i, j := range idx {
		ordered[i] = products[j]
	}
	copy(products, ordered)
}

// score computes a 0-100 similarity between the query and a product.
//   - title coverage: fraction of query tokens present in the title (strongest signal)
//   - description coverage: fraction of query tokens present in the description
//   - title Jaccard: overlap of the two token sets
//
// plus a bonus when the lower-cased query is a substring of the title.
func (r *RelevanceRanker) score(query string, queryTokens []string, product *domain.Product) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	titleLower := strings.ToLower(product.Title)
	titleTokens := tokenize(titleLower)
	descTokens := tokenize(product.Description)

	titleMatched := r.countMatches(queryTokens, titleTokens)
	descMatched := r.countMatches(queryTokens, descTokens)

	score := float64(titleMatched) / float64(len(queryTokens)) * titleCoverageWeight
	score += float64(descMatched) / float64(len(queryTokens)) * descriptionCoverageWeight
	if union := findUnion(queryTokens, titleTokens); union > 0 {
		exact, _ := findIntersection(queryTokens, titleTokens)
		score += float64(exact) / float64(union) * titleJaccardWeight
	}
	score *= 100

	if strings.Contains(titleLower, query) {
		score += titleSubstringBonus
	}
	if score > 100 {
		score = 100
	}
	return score
}

// countMatches counts query tokens found in candidates, exactly or within the edit distance
func (r *RelevanceRanker) countMatches(queryTokens, candidates []string) int {
	set := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		set[c] = true
	}

	matched := 0
	for _, q := range queryTokens {
		if set[q] {
			matched++
			continue
		}
		if r.fuzzyEditDistance == 0 {
			continue
		}
		for _, c := range candidates {
			if fuzzyTokenMatch(q, c, r.fuzzyEditDistance) {
				matched++
				break
			}
		}
	}
	return matched
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, single characters and pure numbers.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || stopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Short tokens produce too many false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// findIntersection returns the count of common tokens and the list of matched tokens
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
