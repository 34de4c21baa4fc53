package ask

import (
	"strings"
	"unicode/utf8"
)

// stopWords are filler terms that never narrow a search. They include the
// company codes, which segment PO counts rather than identify suppliers or parts.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "all": {}, "an": {}, "and": {}, "any": {}, "are": {},
	"at": {}, "between": {}, "by": {}, "can": {}, "compare": {}, "comparison": {},
	"cost": {}, "costs": {}, "did": {}, "do": {}, "does": {}, "find": {}, "for": {},
	"from": {}, "get": {}, "give": {}, "has": {}, "have": {}, "history": {},
	"how": {}, "in": {}, "is": {}, "it": {}, "last": {}, "latest": {}, "list": {},
	"many": {}, "me": {}, "much": {}, "my": {}, "of": {}, "on": {}, "or": {},
	"order": {}, "orders": {}, "our": {}, "please": {}, "po": {}, "pos": {},
	"price": {}, "prices": {}, "pricing": {}, "purchase": {}, "quote": {},
	"quotes": {}, "recent": {}, "show": {}, "tell": {}, "than": {}, "that": {},
	"the": {}, "this": {}, "to": {}, "trend": {}, "us": {}, "versus": {}, "vs": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "which": {},
	"who": {}, "why": {}, "with": {},
	"icl": {}, "isl": {}, "mbs": {},
}

// IsStopWord reports whether token is excluded from keyword search.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// ExtractKeywords lowercases query, splits it on whitespace and drops stop
// words and single-character tokens. Order and duplicates are preserved.
func ExtractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 1 || IsStopWord(f) {
			continue
		}
		keywords = append(keywords, f)
	}
	return keywords
}
