package dialogue

import (
	"context"
	"fmt"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/bmi"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/oracle"
)

// handleReply is the fallback branch for onboarded users: BMI first, then
// the oracle's category decides.
func (r *Router) handleReply(ctx context.Context, phone, text string) (Decision, error) {
	if in, ok := bmi.Parse(text); ok {
		if res, ok := bmi.Calculate(in); ok {
			return loggedReply(fmt.Sprintf(BMIResult, res.Value, bmi.Category(res.Value))), nil
		}
	}

	history, err := r.chats.FindRecent(ctx, phone, r.cfg.ChatHistoryLimit)
	if err != nil {
		return Decision{}, fmt.Errorf("load chat history: %w", err)
	}

	category, err := r.oracle.Classify(ctx, history, text)
	if err != nil {
		r.logger.Warnw("classification failed", "phone", phone, "err", err)
		category = oracle.CategoryUnrecognized
	}
	r.logger.Debugw("message classified", "phone", phone, "category", category.String())

	switch category {
	case oracle.CategoryVitalSign:
		answer, err := r.oracle.EvaluateVitalSign(ctx, text)
		if err != nil {
			r.logger.Warnw("vital sign evaluation failed", "phone", phone, "err", err)
			answer = OracleUnavailable
		}
		return loggedReply(answer), nil
	case oracle.CategoryPersonalInfo:
		return loggedReply(PersonalInfoAck), nil
	case oracle.CategoryMedicalComplaint:
		return r.complaintTurn(ctx, phone, text)
	case oracle.CategoryGeneralInquiry:
		answer, err := r.oracle.Generate(ctx, history, text)
		if err != nil {
			r.logger.Warnw("reply generation failed", "phone", phone, "err", err)
			answer = OracleUnavailable
		}
		return loggedReply(answer), nil
	default:
		return Decision{Actions: []Action{menu(r.catalog.Services), {Text: PickFromMenu}}}, nil
	}
}
