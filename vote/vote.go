// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/danielhkuo/streamvote/models"
)

// Ballot tokens: positive integers without a leading zero, or a single
// alphanumeric word under the freeform policy.
var (
	ballotNumber  = regexp.MustCompile(`^[1-9][0-9]*$`)
	freeformToken = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Parser extracts votes from chat messages under a configured policy.
type Parser struct {
	policy string
}

func NewParser(policy string) *Parser {
	return &Parser{policy: policy}
}

// Parse maps a chat message to the chosen option. The second return is
// false whenever the message is not a vote: poll inactive, wrong token
// shape, or ballot number out of range. Most chat traffic lands here and
// none of it is an error.
func (p *Parser) Parse(state models.PollState, content string) (string, bool) {
	if !state.VotingActive {
		return "", false
	}

	content = strings.TrimSpace(content)

	if p.policy == models.PolicyFreeform {
		if !freeformToken.MatchString(content) {
			return "", false
		}
		return content, true
	}

	if !ballotNumber.MatchString(content) {
		return "", false
	}

	n, err := strconv.Atoi(content)
	if err != nil || n < 1 || n > len(state.Options) {
		return "", false
	}

	return state.Options[n-1], true
}
