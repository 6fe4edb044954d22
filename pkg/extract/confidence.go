package extract

import "strings"

// Keyword sets for confidence scoring. Invite keywords raise the score,
// noise keywords mark text that is probably a log dump or code block.
var (
	inviteKeywords = []string{
		"invite", "code", "beta", "access", "key",
		"token", "giveaway", "sharing", "redeem", "signup",
	}
	noiseKeywords = []string{"error", "exception", "stack", "debug"}
)

// 📊 Confidence scores how likely a piece of text is to be sharing a real
// invite code, in [0.1, 1.0]. The base score is 0.5; invite-related keywords
// add 0.1 each up to 0.3, a mention of the hunt subject adds 0.15, and
// log/error noise subtracts 0.3.
func Confidence(text, subject string) float64 {
	t := strings.ToLower(text)

	score := 0.5

	bonus := 0.0
	for _, kw := range inviteKeywords {
		if strings.Contains(t, kw) {
			bonus += 0.1
		}
	}
	if bonus > 0.3 {
		bonus = 0.3
	}
	score += bonus

	if subject != "" && strings.Contains(t, strings.ToLower(subject)) {
		score += 0.15
	}

	for _, kw := range noiseKeywords {
		if strings.Contains(t, kw) {
			score -= 0.3
			break
		}
	}

	if score < 0.1 {
		score = 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
