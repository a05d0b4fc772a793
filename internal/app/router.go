package app

import "strings"

// RouteKind classifies a user utterance before it can reach the answer
// engine. Trigger phrases open the credential prompt and are never forwarded.
type RouteKind int

const (
	RouteNormal RouteKind = iota
	RouteLoginTrigger
	RouteAlreadyAuthorized
)

// triggerPhrases are the reserved control utterances, matched whole after
// trimming, case-insensitively.
var triggerPhrases = []string{"admin", "login", "verification"}

func Route(input string, authorized bool) RouteKind {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, phrase := range triggerPhrases {
		if normalized == phrase {
			if authorized {
				return RouteAlreadyAuthorized
			}
			return RouteLoginTrigger
		}
	}
	return RouteNormal
}
