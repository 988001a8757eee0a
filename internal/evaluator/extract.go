package evaluator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError means the judge output could not be turned into JSON by any of
// the extraction attempts. Raw holds a truncated prefix of the model text
// for diagnosis.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse JSON from judge response: %q", e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const rawExcerptLimit = 200

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON parses judge output defensively: direct parse first, then the
// contents of a fenced code block, then the widest {...} span. Judges are
// asked for pure JSON but do not reliably produce it.
func extractJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		if err := json.Unmarshal([]byte(m[1]), v); err == nil {
			return nil
		}
	}

	var lastErr error
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), v); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	return &ParseError{Raw: truncate(raw, rawExcerptLimit), Err: lastErr}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
