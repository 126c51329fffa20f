// README: Structural prompt-injection denylist check.
package intake

import "strings"

// SecurityError marks input rejected by the sanitizer. The rejection is
// identical whichever denylisted phrase matched; the matched phrase is never
// echoed back to the caller.
type SecurityError struct{}

func (*SecurityError) Error() string {
	return "intake: input contains a blocked instruction pattern"
}

// denylist holds structural override phrases. This is a defense against
// prompt injection overriding the generation stage's system instructions,
// not a general content filter; content-domain filtering is the routing
// stage's status classification.
var denylist = []string{
	"ignore previous instructions",
	"system override",
	"delete database",
	"drop table",
}

// Sanitize trims the input and rejects it when its lower-cased form contains
// any denylisted phrase as a substring. First match wins.
func Sanitize(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)
	for _, phrase := range denylist {
		if strings.Contains(lowered, phrase) {
			return "", &SecurityError{}
		}
	}
	return trimmed, nil
}
