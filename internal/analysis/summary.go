package analysis

import "strings"

// NoFeedback is returned when there is nothing to summarize.
const NoFeedback = "No specific feedback available."

const summaryItems = 3

// SummarizeFeedback joins up to three entries; longer lists are cut with an ellipsis.
func SummarizeFeedback(items []string) string {
	if len(items) == 0 {
		return NoFeedback
	}
	if len(items) <= summaryItems {
		return strings.Join(items, " ")
	}
	return strings.Join(items[:summaryItems], " ") + "..."
}
