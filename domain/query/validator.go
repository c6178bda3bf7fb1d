package query

import (
	"regexp"
	"strings"
)

// AllowedOperations is the static list of read clauses advertised in
// write-rejection error details.
var AllowedOperations = []string{
	"MATCH",
	"RETURN",
	"WITH",
	"WHERE",
	"ORDER BY",
	"LIMIT",
	"SKIP",
	"CALL",
	"SHOW",
	"UNWIND",
	"OPTIONAL MATCH",
}

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	singleQuoteRe  = regexp.MustCompile(`'(?:\\.|[^'\\])*'`)
	doubleQuoteRe  = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)

	// DETACH DELETE is tried first so it reports as one phrase instead of
	// a bare DELETE.
	forbiddenRe = regexp.MustCompile(`(?i)\b(DETACH\s+DELETE|CREATE|DELETE|MERGE|SET|REMOVE|DROP)\b`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// stripNonCode removes comments and string literal contents so write
// keywords appearing inside them cannot trigger a rejection. Escaped quotes
// inside literals ('it\'s a test') are handled.
func stripNonCode(query string) string {
	cleaned := lineCommentRe.ReplaceAllString(query, "")
	cleaned = blockCommentRe.ReplaceAllString(cleaned, "")
	cleaned = singleQuoteRe.ReplaceAllString(cleaned, "")
	cleaned = doubleQuoteRe.ReplaceAllString(cleaned, "")
	return cleaned
}

// IsReadOnly reports whether the query contains no write operations.
//
// This is deliberately a lexical filter, not a Cypher parser: comments and
// string literals are stripped, then the remainder is scanned for whole-word
// write keywords. Keywords assembled dynamically inside Cypher expressions
// are not detected; that matches the documented limitation of this gateway.
func IsReadOnly(query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	return !forbiddenRe.MatchString(stripNonCode(query))
}

// ForbiddenKeyword returns the first forbidden keyword or phrase found in
// the query, uppercased with inner whitespace collapsed, or "" when the
// query is read-only.
func ForbiddenKeyword(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	match := forbiddenRe.FindString(stripNonCode(query))
	if match == "" {
		return ""
	}
	return strings.ToUpper(whitespaceRe.ReplaceAllString(match, " "))
}
