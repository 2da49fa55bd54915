package oracle

import (
	"fmt"
	"strings"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint"
)

const (
	classifyTokens = 50
	replyTokens    = 100

	generateHistory  = 5
	complaintHistory = 20
)

// renderHistory formats a newest-first slice as chronological "ROLE: message" lines.
func renderHistory(newestFirst []*entity.Entry, max int) string {
	n := len(newestFirst)
	if max > 0 && n > max {
		n = max
	}
	lines := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		e := newestFirst[i]
		lines = append(lines, fmt.Sprintf("%s: %s", e.Role, e.Message))
	}
	return strings.Join(lines, "\n")
}

func classifyPrompt(history []*entity.Entry, message string) string {
	return fmt.Sprintf(`Categorize this message into one of these categories:
1. Vital sign input
2. Personal information supply
3. Medical complaint
4. General inquiry
5. Other

Chat History:
%s

New Message: %s
Response should be just the category name.`, renderHistory(history, 0), message)
}

func generatePrompt(history []*entity.Entry, message string) string {
	return fmt.Sprintf(`You are a WhatsApp chatbot assisting users with health-related queries.
Generate a concise and helpful response based on the user's message and previous chat history.

Chat History:
%s

User Message: %s

Reply:`, renderHistory(history, generateHistory), message)
}

func followUpPrompt(complaints []string, message string) string {
	if len(complaints) > complaintHistory {
		complaints = complaints[:complaintHistory]
	}
	return fmt.Sprintf(`You are a WhatsApp chatbot assisting users with health-related queries.
A user is making a medical complaint. Your goal is to ask at most two meaningful follow-up questions if needed, based on the user's message and previous messages.
If the user has already provided sufficient information, simply reply with:
"%s"

Chat History:
%s

User Message: %s

Reply:`, complaint.TerminationSentence, strings.Join(complaints, "\n"), message)
}

func vitalSignPrompt(message string) string {
	return fmt.Sprintf(`You are a WhatsApp chatbot assisting users with health-related queries about vital signs like blood pressure, heart rate, temperature, and blood sugar levels.

A user provided information about these parameters, and I want you to:
1. State whether each parameter appears to be within a generally healthy range or potentially concerning.
2. If there is need to talk with a physician, please suggest they reply with "Yes talk to doctor".

If BMI parameters (height in cm and weight in kg) are sent, please calculate the BMI and state the user's BMI category.

User Message: %s

Reply:`, message)
}
