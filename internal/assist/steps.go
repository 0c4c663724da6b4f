package assist

import (
	"fmt"

	"github.com/chaiwat/pcnova/internal/domain"
)

// stepOutcome classifies the result of one collection turn.
type stepOutcome int

const (
	// stepCancelled means the customer typed the cancel token; the draft and
	// cursor must be reset and the session returns to the main menu.
	stepCancelled stepOutcome = iota
	// stepAdvanced means a field was filled and the cursor moved forward.
	stepAdvanced
	// stepComplete means the sixth field was filled; the reply is the recap.
	stepComplete
)

// stepResult is the outcome of submitStep.
type stepResult struct {
	outcome stepOutcome
	cursor  int
	draft   domain.PCSpec
	reply   string
}

// submitStep drives one turn of the ordered six-field collection. The user's
// text is written verbatim into the field at cursor (1-indexed); no semantic
// validation is applied — judging "RTX 4060" is the model's job, not ours.
func submitStep(cursor int, text string, draft domain.PCSpec) stepResult {
	if text == cancelToken {
		return stepResult{outcome: stepCancelled, cursor: 0, draft: domain.PCSpec{}}
	}

	draft.SetField(cursor, text)

	if cursor < domain.ComponentCount {
		next := cursor + 1
		reply := fmt.Sprintf("%s\n\n%s", componentAck(cursor), componentPrompt(next))
		return stepResult{outcome: stepAdvanced, cursor: next, draft: draft, reply: reply}
	}

	return stepResult{
		outcome: stepComplete,
		cursor:  cursor,
		draft:   draft,
		reply:   specRecap(&draft),
	}
}
