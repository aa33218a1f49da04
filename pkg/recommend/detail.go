package recommend

import (
	"strings"

	"ghostpipe/internal/utils"
)

// BuildDetailContexts runs every candidate through the pipeline and returns
// one DetailContext per input, in the original order. Discarding is a flag,
// never a removal, so callers that correlate by index (telemetry, pagination)
// keep working.
//
// A candidate is discarded when the user's typing since invocation is no
// longer a prefix of it, when truncation leaves nothing, or when an earlier
// candidate already produced the same reformatted content. The seen-content
// set lives for this one call only.
func (p *Processor) BuildDetailContexts(rc *RequestContext, userInput string, candidates []Candidate, requestID string) []DetailContext {
	right := rc.RightContext()
	seen := utils.NewContentFilter()

	details := make([]DetailContext, 0, len(candidates))
	for _, cand := range candidates {
		staleInput := !strings.HasPrefix(cand.Content, userInput)

		truncated := Truncate(cand.Content, right)
		processed := p.Reformat(rc, withContent(cand, truncated))

		duplicate := truncated == ""
		if !duplicate {
			duplicate = !seen.ShouldKeep(processed.Content)
		}

		details = append(details, DetailContext{
			RequestID:    requestID,
			Original:     cand,
			Processed:    processed,
			Discarded:    staleInput || duplicate,
			WasTruncated: len(truncated) != len(cand.Content),
		})
	}
	return details
}
