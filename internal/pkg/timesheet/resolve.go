// Package timesheet is the shared attendance calculation library. Everything
// in it is pure and stateless: spreadsheet field resolution, punch time
// parsing, daily hour pairing, per-day classification and the monthly payroll
// aggregation all live here so that every call site computes identical
// results.
package timesheet

import (
	"regexp"
	"sort"
	"strings"
)

var wordTokenRegex = regexp.MustCompile(`[a-z0-9]+`)

// ResolveField extracts a logical field from an arbitrarily-headered row.
// Strategies are tried in order across all candidates: exact key match,
// case/whitespace-insensitive match, then token-subset match (candidate and
// header are split into alphanumeric word tokens; one token set must be a
// subset of the other). The first non-empty value wins. Absence is the empty
// string; this never fails.
func ResolveField(row map[string]string, candidates []string) string {
	// exact
	for _, cand := range candidates {
		if v, ok := row[cand]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}

	// case/whitespace-insensitive
	squashed := make(map[string]string, len(row))
	for k, v := range row {
		key := squashKey(k)
		if _, exists := squashed[key]; !exists || strings.TrimSpace(v) != "" {
			squashed[key] = v
		}
	}
	for _, cand := range candidates {
		if v, ok := squashed[squashKey(cand)]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}

	// token subset, over sorted header keys for deterministic resolution
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, cand := range candidates {
		candTokens := wordTokens(cand)
		if len(candTokens) == 0 {
			continue
		}
		for _, k := range keys {
			trimmed := strings.TrimSpace(row[k])
			if trimmed == "" {
				continue
			}
			keyTokens := wordTokens(k)
			if len(keyTokens) == 0 {
				continue
			}
			if tokenSubset(candTokens, keyTokens) || tokenSubset(keyTokens, candTokens) {
				return trimmed
			}
		}
	}

	return ""
}

func squashKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

func wordTokens(s string) map[string]bool {
	tokens := wordTokenRegex.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func tokenSubset(sub, super map[string]bool) bool {
	for t := range sub {
		if !super[t] {
			return false
		}
	}
	return true
}
