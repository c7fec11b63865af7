// Package intent maps free-text Danish chat messages to typed business
// intents with extracted parameters. Classification is heuristic: an
// ordered table of pattern rules evaluated against the lower-cased message,
// first match wins. Rule order is a deliberate tie-break policy; a message
// matching several rules always yields the earliest rule's intent.
package intent

import (
	"strings"
	"time"

	"github.com/rendetalje/friday/pkg/models"
)

var timeNow = time.Now

// Parse classifies a single chat message. It is total: input that matches
// no rule yields the unknown intent with confidence 0 and empty params.
// Confidence values are fixed per rule, not computed from match quality.
func Parse(message string) models.ParsedIntent {
	return parse(message, timeNow())
}

// parse is the deterministic core; now anchors relative dates ("i morgen")
// extracted into task due dates.
func parse(message string, now time.Time) models.ParsedIntent {
	lower := strings.ToLower(message)

	for _, r := range rules {
		if !r.match(lower) {
			continue
		}
		params := models.Params{}
		if r.extract != nil {
			r.extract(message, lower, now, params)
		}
		return models.ParsedIntent{
			Intent:     r.intent,
			Params:     params,
			Confidence: r.confidence,
		}
	}

	return models.ParsedIntent{
		Intent:     models.IntentUnknown,
		Params:     models.Params{},
		Confidence: 0,
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
