// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"sort"

	"github.com/danielhkuo/streamvote/models"
)

// Count derives the tally from the per-voter choice map. Declared options
// always appear in Details, in ballot order, zero votes included; write-in
// values (freeform policy) follow in lexicographic order so reports stay
// deterministic. Counts depend only on the multiset of map values, never on
// iteration order.
func Count(votesByVoter map[string]string, options []string) models.TallyResult {
	counts := make(map[string]int, len(options))
	for _, opt := range options {
		counts[opt] = 0
	}

	var writeIns []string
	for _, choice := range votesByVoter {
		if _, known := counts[choice]; !known {
			writeIns = append(writeIns, choice)
		}
		counts[choice]++
	}
	sort.Strings(writeIns)

	total := len(votesByVoter)

	ordered := make([]string, 0, len(counts))
	ordered = append(ordered, options...)
	ordered = append(ordered, writeIns...)

	details := make([]models.VoteDetail, 0, len(ordered))
	for _, opt := range ordered {
		details = append(details, models.VoteDetail{
			Option:     opt,
			Count:      counts[opt],
			Percentage: percentage(counts[opt], total),
		})
	}

	result := models.TallyResult{
		Counts:  counts,
		Total:   total,
		Details: details,
	}

	// Winner: first entry in ballot order holding the maximum count. Ties
	// resolve to the earliest declared option; write-ins can never win a tie
	// against a declared option.
	if total > 0 {
		best := 0
		for i := 1; i < len(details); i++ {
			if details[i].Count > details[best].Count {
				best = i
			}
		}
		winner := details[best]
		result.Winner = &winner
	}

	return result
}

// percentage rounds half up to the nearest integer; 1 of 3 is 33, 2 of 3 is 67.
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
