package extract

import (
	"regexp"
	"strings"
)

// backtickSpan matches the first backtick-delimited span, non-greedy, across
// newlines. Models that ignore the "no backticks" instruction usually still
// delimit the command this way.
var backtickSpan = regexp.MustCompile("(?s)`(.*?)`")

// Extract reduces a raw model response to a bare command string. It never
// fails; at worst it returns the trimmed input.
//
// A response with an unterminated backtick span (odd backtick count) falls
// through to fence stripping, which leaves the stray backtick in place. An
// empty result is the caller's signal that generation produced nothing usable.
func Extract(raw string) string {
	if strings.Contains(raw, "`") {
		if m := backtickSpan.FindStringSubmatch(raw); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, "```", ""))
}

// IsUsable reports whether an extracted command can be executed. Local models
// occasionally reply with nothing, or with the literal string "null"; both
// mean generation failed, not that a zero-length command was requested.
func IsUsable(command string) bool {
	return command != "" && command != "null"
}
