// Package parser converts raw multi-line card list text into structured
// card requests. Three grammars are recognized in priority order: pipe
// delimited ("Lightning Bolt | LEA"), collection exports
// ("2x Sol Ring (lea) 1"), and bare names. A line that matches no
// structured grammar still yields a request, so the number of requests
// always equals the number of non-blank lines.
package parser

import (
	"regexp"
	"strings"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// foilMarker is the bracketed token some collection exports append to
// foil printings, e.g. "1 The Rise of Sozin (TLA) 117 *F*".
const foilMarker = "*F*"

var (
	// quantityPattern strips leading "2x " / "3 " style counts.
	quantityPattern = regexp.MustCompile(`^(\d+)[xX]?\s+`)

	// collectionPattern captures quantity, name, and parenthesized set
	// code; an optional trailing collector number is discarded.
	collectionPattern = regexp.MustCompile(`^(?:(\d+)[xX]?\s+)?(.+?)\s+\(([^)]+)\)(?:\s+\S+)?$`)
)

// Parse splits text into lines and produces one request per non-blank
// line. It is pure and deterministic; malformed lines degrade to bare
// name requests rather than being dropped.
func Parse(text string) []domain.CardRequest {
	var requests []domain.CardRequest

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		requests = append(requests, parseLine(line))
	}

	return requests
}

func parseLine(line string) domain.CardRequest {
	req := domain.CardRequest{RawInput: line}

	work := line
	if strings.HasSuffix(work, foilMarker) {
		req.IsFoil = true
		work = strings.TrimSpace(strings.TrimSuffix(work, foilMarker))
	}

	// Pipe grammar: name | set code. Exactly two segments.
	if strings.Contains(work, "|") {
		parts := strings.SplitN(work, "|", 2)
		req.Name = stripQuantity(strings.TrimSpace(parts[0]))
		req.SetCode = strings.ToUpper(strings.TrimSpace(parts[1]))
		return req
	}

	// Collection grammar: optional quantity, name, (set code), optional
	// collector number.
	if m := collectionPattern.FindStringSubmatch(work); m != nil {
		req.Name = strings.TrimSpace(m[2])
		req.SetCode = strings.ToUpper(strings.TrimSpace(m[3]))
		return req
	}

	// Bare name.
	req.Name = stripQuantity(work)
	return req
}

func stripQuantity(s string) string {
	return strings.TrimSpace(quantityPattern.ReplaceAllString(s, ""))
}

// AllHaveSetCodes reports whether the list is non-empty and every
// request names a set. Callers use it to gate submission.
func AllHaveSetCodes(requests []domain.CardRequest) bool {
	if len(requests) == 0 {
		return false
	}
	for _, req := range requests {
		if req.SetCode == "" {
			return false
		}
	}
	return true
}
