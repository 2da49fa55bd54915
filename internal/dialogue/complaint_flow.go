package dialogue

import (
	"context"
	"fmt"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint"
	complaintentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
)

// complaintTurn runs one step of the complaint follow-up for phone.
func (r *Router) complaintTurn(ctx context.Context, phone, text string) (Decision, error) {
	all, err := r.complaints.FindAllByPhone(ctx, phone, r.cfg.ComplaintHistoryLimit)
	if err != nil {
		return Decision{}, fmt.Errorf("load complaints: %w", err)
	}
	var latest *complaintentity.Complaint
	if len(all) > 0 {
		latest = all[0]
	}

	var question string
	if complaint.NeedsFollowUp(latest) {
		question, err = r.oracle.FollowUp(ctx, complaint.History(all), text)
		if err != nil {
			r.logger.Warnw("follow-up question failed", "phone", phone, "err", err)
			return loggedReply(OracleUnavailable), nil
		}
	}

	d := complaint.Decide(phone, latest, text, question)
	if d.Create != nil {
		if err := r.complaints.Create(ctx, d.Create); err != nil {
			return Decision{}, fmt.Errorf("create complaint: %w", err)
		}
		r.logger.Infow("complaint opened", "phone", phone, "id", d.Create.ID)
	}
	if d.Update != nil {
		if err := r.complaints.UpdateLatest(ctx, phone, *d.Update); err != nil {
			return Decision{}, fmt.Errorf("update complaint: %w", err)
		}
	}

	if d.Completed {
		r.logger.Infow("complaint follow-up finished", "phone", phone)
		return Decision{
			Actions: []Action{menu(r.catalog.Medical), {Text: ReviewingComplaint}},
			LogTurn: true,
		}, nil
	}
	return loggedReply(d.Reply), nil
}
