// Package similarity ranks approximate name matches for correction
// suggestions. Distances are classic unit-cost edit distances computed with
// a two-row rolling table and memoized per input pair, since the same pairs
// recur across many validation calls in a session.
package similarity

import (
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Cache memoizes edit-distance computations. Construct one per process or
// per session and share it; the zero value is not usable.
//
// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[pairKey]int
}

type pairKey struct {
	a, b string
}

// NewCache creates an empty distance cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[pairKey]int)}
}

// Distance returns the unit-cost edit distance between a and b.
func (c *Cache) Distance(a, b string) int {
	key := pairKey{a, b}
	if len(b) < len(a) {
		key = pairKey{b, a}
	}

	c.mu.RLock()
	d, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return d
	}

	d = editDistance(key.a, key.b)

	c.mu.Lock()
	c.entries[key] = d
	c.mu.Unlock()
	return d
}

// editDistance computes the Levenshtein distance with O(min(|a|,|b|)) space.
// a must be the shorter string.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Match is one ranked suggestion.
type Match struct {
	Name string
	// Score is the normalized similarity in [0, 1].
	Score float64
}

// Similarity returns 1 - distance/max(len(a), len(b)), case-insensitively.
func (c *Cache) Similarity(a, b string) float64 {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	longest := len(la)
	if len(lb) > longest {
		longest = len(lb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(c.Distance(la, lb))/float64(longest)
}

// SimilarNames returns the candidates whose normalized similarity to target
// is at least threshold, best first. A fallback pass adds candidates that
// edit distance alone would miss: prefix/suffix relationships, names that
// differ only by underscores, and subsequence matches.
func (c *Cache) SimilarNames(target string, candidates []string, threshold float64) []Match {
	var matches []Match
	included := make(map[string]bool)

	for _, cand := range candidates {
		score := c.Similarity(target, cand)
		if score >= threshold {
			matches = append(matches, Match{Name: cand, Score: score})
			included[strings.ToLower(cand)] = true
		}
	}

	for _, m := range fallbackMatches(target, candidates) {
		if !included[strings.ToLower(m.Name)] {
			included[strings.ToLower(m.Name)] = true
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// SimilarNamesWithRetry applies the two-tier policy: try the primary
// threshold, and only when nothing clears it retry once at the lower one so
// a weak suggestion still surfaces when nothing better exists.
func (c *Cache) SimilarNamesWithRetry(target string, candidates []string, primary, retry float64) []Match {
	matches := c.SimilarNames(target, candidates, primary)
	if len(matches) > 0 {
		return matches
	}
	return c.SimilarNames(target, candidates, retry)
}

// fallbackMatches catches obviously related names that pure edit distance
// can rank below threshold, e.g. "user" vs "users" on short names, or
// "user_id" vs "userid".
func fallbackMatches(target string, candidates []string) []Match {
	lt := strings.ToLower(target)
	flat := strings.ReplaceAll(lt, "_", "")

	var out []Match
	matched := make(map[string]bool)
	add := func(name string, score float64) {
		if !matched[strings.ToLower(name)] {
			matched[strings.ToLower(name)] = true
			out = append(out, Match{Name: name, Score: score})
		}
	}

	for _, cand := range candidates {
		lc := strings.ToLower(cand)
		if lc == lt {
			add(cand, 1)
			continue
		}
		if strings.ReplaceAll(lc, "_", "") == flat {
			add(cand, 0.95)
			continue
		}
		if strings.HasPrefix(lc, lt) || strings.HasPrefix(lt, lc) ||
			strings.HasSuffix(lc, lt) || strings.HasSuffix(lt, lc) {
			shorter, longer := len(lt), len(lc)
			if longer < shorter {
				shorter, longer = longer, shorter
			}
			add(cand, float64(shorter)/float64(longer))
		}
	}

	// subsequence pass for transposition-ish misses
	results := fuzzy.Find(flat, lowercaseAll(candidates))
	for _, r := range results {
		add(candidates[r.Index], 0.5)
	}
	return out
}

func lowercaseAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.ReplaceAll(s, "_", ""))
	}
	return out
}
