package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/harborview-health/scheduler-agent/internal/insurance"
	"github.com/harborview-health/scheduler-agent/internal/patients"
	"github.com/harborview-health/scheduler-agent/internal/schedule"
)

// All outbound text lives here so every prompt is a pure function of session
// state and each turn renders deterministically.

func msgGreeting() string {
	return "Hello! Welcome to Harborview Health. I can help you book an appointment. What's your first name?"
}

func msgAskDOB(first string) string {
	return fmt.Sprintf("Nice to meet you, %s! To look you up, what's your date of birth? (MM/DD/YYYY)", first)
}

func msgInvalidDOB() string {
	return "I couldn't read that as a date. Could you give me your date of birth as MM/DD/YYYY?"
}

func msgWelcomeBack(first string, doctors []string) string {
	return fmt.Sprintf("Welcome back, %s! Good to see you again. %s", first, msgDoctorPrompt(doctors))
}

func msgRegisterIntro(first, field string) string {
	return fmt.Sprintf("I don't see you in our system yet, %s, so let's get you registered. What's your %s?", first, field)
}

func msgAskField(field string) string {
	return fmt.Sprintf("Thanks! What's your %s?", field)
}

func msgInvalidEmail() string {
	return "That doesn't look like a valid email address. Could you double-check it?"
}

func msgInvalidPhone() string {
	return "That doesn't look like a valid phone number. Could you give me a 10-digit number?"
}

func msgRegistered(first string, doctors []string) string {
	return fmt.Sprintf("Perfect, you're all registered, %s! %s", first, msgDoctorPrompt(doctors))
}

func msgDoctorPrompt(doctors []string) string {
	var b strings.Builder
	b.WriteString("Which doctor would you like to see?\n")
	for _, d := range doctors {
		b.WriteString("  - ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func msgUnknownDoctor(doctors []string) string {
	return "I couldn't find that doctor on our roster. " + msgDoctorPrompt(doctors)
}

func msgNoSlots(doctor string, doctors []string) string {
	return fmt.Sprintf("Unfortunately %s has no open slots right now. %s", doctor, msgDoctorPrompt(doctors))
}

// msgSlotList numbers every open slot with a single ordinal sequence across
// all dates, so "the 5th one" is unambiguous.
func msgSlotList(doctor string, duration int, slots []schedule.Slot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the available %d-minute appointments with %s:\n", duration, doctor)
	lastDate := ""
	for i, slot := range slots {
		if slot.Date != lastDate {
			fmt.Fprintf(&b, "%s:\n", formatDate(slot.Date))
			lastDate = slot.Date
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, formatTime(slot.Time))
	}
	b.WriteString("Which one works for you? Just give me the number.")
	return b.String()
}

func msgChooseInRange(n int) string {
	return fmt.Sprintf("Please pick a number between 1 and %d.", n)
}

func msgChoiceUnrecognized(n int) string {
	return fmt.Sprintf("I didn't catch which slot you'd like. Please pick a number between 1 and %d.", n)
}

func msgSlotTaken(doctor string, duration int, slots []schedule.Slot) string {
	return "Sorry, that slot was just taken. " + msgSlotList(doctor, duration, slots)
}

func msgSlotSelected(draft *AppointmentDraft) string {
	return fmt.Sprintf("Great! I've reserved %s at %s for your %d-minute appointment with %s. %s",
		formatDate(draft.Date), formatTime(draft.Time), draft.DurationMinutes, draft.Doctor,
		msgAskInsurance(insurance.FieldCarrier))
}

func msgAskInsurance(field insurance.Field) string {
	switch field {
	case insurance.FieldCarrier:
		return "Who is your insurance carrier? If you don't have insurance, just say so."
	case insurance.FieldMemberID:
		return "What's your member ID? Say \"not available\" if you don't have it handy."
	case insurance.FieldGroupNumber:
		return "And your group number? Say \"not available\" if you don't have one."
	default:
		return ""
	}
}

func msgConfirmationSummary(patient patients.Draft, draft *AppointmentDraft) string {
	var b strings.Builder
	b.WriteString("Here's what I have:\n")
	fmt.Fprintf(&b, "  Patient: %s (%s)\n", patient.FullName(), patient.Classification)
	fmt.Fprintf(&b, "  Doctor: %s\n", draft.Doctor)
	fmt.Fprintf(&b, "  When: %s at %s (%d minutes)\n", formatDate(draft.Date), formatTime(draft.Time), draft.DurationMinutes)
	fmt.Fprintf(&b, "  Insurance: %s", draft.Insurance.Carrier)
	if draft.Insurance.Carrier != insurance.SelfPay {
		fmt.Fprintf(&b, " (member %s, group %s)", draft.Insurance.MemberID, draft.Insurance.GroupNumber)
	}
	b.WriteString("\nShall I confirm this appointment? (yes/no)")
	return b.String()
}

func msgWhatToChange() string {
	return "No problem. What would you like to change? I can't undo earlier steps, but I'm happy to re-check the details with you."
}

func msgConfirmNeeded() string {
	return "Just let me know: should I confirm this appointment? (yes/no)"
}

func msgConfirmed(patient patients.Draft, draft *AppointmentDraft) string {
	return fmt.Sprintf("You're all set, %s! Your %d-minute appointment with %s is confirmed for %s at %s. You'll get a confirmation email shortly. See you then!",
		patient.FirstName, draft.DurationMinutes, draft.Doctor, formatDate(draft.Date), formatTime(draft.Time))
}

func msgAlreadyCompleted() string {
	return "Your appointment is already booked. If you'd like to schedule another one, please start a new session."
}

func msgRetry() string {
	return "Sorry, I'm having trouble reaching our records right now. Could you try that again in a moment?"
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2")
}

func formatTime(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}
