package complaint

import (
	"fmt"
	"strings"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
)

// TerminationSentence is what the follow-up oracle answers once it has no more
// questions. Compared by exact match.
const TerminationSentence = "No further questions at the moment."

// DefaultPrompt opens every new complaint.
const DefaultPrompt = "I'm sorry to hear you're not feeling well. 😔\n" +
	"Please describe your symptoms: what you feel, where it hurts and how long it has been going on."

// ResponseFormatSuffix is appended to every follow-up question.
const ResponseFormatSuffix = "\n\nPlease respond in this format:\nAnswer: <your answer>"

// Decision is the outcome of one complaint turn: at most one persistence
// mutation plus either a reply or the completion signal.
type Decision struct {
	// Create is a new complaint to insert (ID left for the caller).
	Create *entity.Complaint
	// Update overwrites the latest complaint.
	Update *entity.Patch
	// Reply is the text to send; empty when Completed.
	Reply string
	// Completed means the follow-up is over and the medical menu should be offered.
	Completed bool
}

// NeedsFollowUp reports whether Decide needs a follow-up question from the
// oracle for this latest complaint. Nothing is asked for a first complaint or
// for one that is already resolved or closed.
func NeedsFollowUp(latest *entity.Complaint) bool {
	return latest != nil && !latest.Status.Terminal()
}

// Decide computes the next complaint step from the latest persisted complaint
// (nil when the user has none), the user's text and, when NeedsFollowUp was
// true, the oracle's follow-up question.
func Decide(phone string, latest *entity.Complaint, text, question string) Decision {
	if latest == nil {
		return Decision{
			Create: &entity.Complaint{
				Phone:     phone,
				Complaint: text,
				Question:  DefaultPrompt,
				Status:    entity.StatusNew,
			},
			Reply: DefaultPrompt,
		}
	}

	switch latest.Status {
	case entity.StatusNew:
		return Decision{
			Update: &entity.Patch{Complaint: text, Question: question, Status: entity.StatusInProgress},
			Reply:  question + ResponseFormatSuffix,
		}
	case entity.StatusInProgress:
		d := Decision{
			Update: &entity.Patch{Complaint: text, Question: question, Status: entity.StatusInProgress},
		}
		if question == TerminationSentence {
			d.Completed = true
			return d
		}
		d.Reply = question + ResponseFormatSuffix
		return d
	case entity.StatusResolved, entity.StatusClosed:
		return Decision{Reply: AlreadyFinished(latest.Status)}
	default:
		return Decision{Reply: question}
	}
}

// AlreadyFinished is the reply for a user whose latest complaint is terminal.
func AlreadyFinished(s entity.Status) string {
	return fmt.Sprintf("Your previous complaint has already been %s. Would you like to file a new one?", strings.ToLower(string(s)))
}

// History renders complaints (newest first) as the follow-up oracle's context.
func History(complaints []*entity.Complaint) []string {
	out := make([]string, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, c.Complaint)
	}
	return out
}
