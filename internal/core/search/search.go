// Package search compiles free-text catalog queries into lesson predicates.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"afterschool/internal/core/domain"
)

// Predicate reports whether a lesson matches a compiled query.
type Predicate func(domain.Lesson) bool

// Compile turns a raw user query into a Predicate. A trimmed-empty query
// matches everything. Any other query is treated as a literal substring,
// never as a pattern: metacharacters are escaped before the matcher is
// built. A query that also parses as a number matches on exact price
// (float) and exact space (integer); the numeric branches are additive,
// not exclusive.
func Compile(raw string) Predicate {
	q := strings.TrimSpace(raw)
	if q == "" {
		return func(domain.Lesson) bool { return true }
	}

	text := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
	price, priceErr := strconv.ParseFloat(q, 64)
	space, spaceErr := strconv.Atoi(q)

	return func(l domain.Lesson) bool {
		if text.MatchString(l.Subject) || text.MatchString(l.Location) {
			return true
		}
		if priceErr == nil && l.Price == price {
			return true
		}
		if spaceErr == nil && l.Space == space {
			return true
		}
		return false
	}
}
