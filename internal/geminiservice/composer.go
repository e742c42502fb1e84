package geminiservice

import (
	"fmt"
	"strconv"
	"strings"
)

// historyWindow bounds how many prior turns are re-sent upstream. Older turns
// are silently dropped, not summarised.
const historyWindow = 10

// PromptInput is everything the composer may look at. The composition is a
// pure function of this struct: identical inputs produce byte-identical
// prompts, which is the one testable invariant of this component.
type PromptInput struct {
	Path       PathType
	Patient    PatientIntake
	History    []Turn
	Message    string
	Attachment *Attachment
}

// ComposePrompt builds the single text prompt sent upstream. It concatenates
// exactly three logical blocks with blank-line separators, in fixed order:
// the invariant safety/style preamble, the path-specific structure block
// (omitted when the path is unknown), and the turn-specific instruction
// block built fresh per call.
//
// There are no failure conditions: missing fields degrade to placeholder
// text. That is deliberate policy, not an oversight.
func ComposePrompt(in PromptInput) string {
	blocks := []string{SafetyPreamble}
	switch in.Path {
	case PathMedicine:
		blocks = append(blocks, medicineStructure)
	case PathLifestyle:
		blocks = append(blocks, lifestyleStructure)
	}
	blocks = append(blocks, turnBlock(in))
	return strings.Join(blocks, "\n\n")
}

// turnBlock renders the per-call context: the bounded history, the intake
// fields, the quoted latest message, and the task directive.
func turnBlock(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Conversation so far:\n")
	history := in.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) == 0 {
		b.WriteString(noHistorySentinel)
		b.WriteString("\n")
	} else {
		for _, turn := range history {
			speaker := "User"
			if turn.Role == RoleBot {
				speaker = "Assistant"
			}
			b.WriteString(speaker)
			b.WriteString(": ")
			b.WriteString(turn.Message)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nPatient details from the intake form:\n")
	writePatient(&b, in.Patient)

	b.WriteString("\nLatest user message: ")
	if strings.TrimSpace(in.Message) == "" {
		b.WriteString(noMessageSentinel)
	} else {
		b.WriteString(strconv.Quote(in.Message))
	}
	b.WriteString("\n")

	if in.Attachment != nil {
		mimeType := in.Attachment.Type
		if mimeType == "" {
			mimeType = defaultMimeType
		}
		fmt.Fprintf(&b, "The user attached a file named %q (%s); consider its contents in your reply.\n", in.Attachment.Name, mimeType)
	}

	b.WriteString("\n")
	b.WriteString(directive(in))
	return b.String()
}

// directive picks the task instruction: the first turn asks for the full
// structure, every later turn asks for a short direct answer instead.
func directive(in PromptInput) string {
	if len(in.History) > 0 {
		return followUpDirective
	}
	if in.Path == PathUnknown {
		return genericDirective
	}
	return firstTurnDirective
}

func writePatient(b *strings.Builder, p PatientIntake) {
	writeField(b, "Symptoms", textOrPlaceholder(p.Symptoms, notProvided))
	writeField(b, "Symptom duration", durationText(p))
	writeField(b, "Meals per day", countText(p.MealsPerDay))
	writeField(b, "Water intake", quantityText(p.WaterIntake, "litres per day"))
	writeField(b, "Last meal", lastMealText(p))
	writeField(b, "Sleep", quantityText(p.SleepHours, "hours per night"))
	writeField(b, "Stress level", textOrPlaceholder(p.StressLevel, notProvided))
	writeField(b, "Exercise frequency", textOrPlaceholder(p.ExerciseFrequency, notProvided))
	writeField(b, "Smoking status", textOrPlaceholder(p.SmokingStatus, notProvided))
	writeField(b, "Alcohol consumption", textOrPlaceholder(p.AlcoholConsumption, notProvided))
	writeField(b, "Additional notes", textOrPlaceholder(p.AdditionalInfo, noneProvided))
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func textOrPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func durationText(p PatientIntake) string {
	if p.SymptomDuration <= 0 || strings.TrimSpace(p.SymptomUnit) == "" {
		return notProvided
	}
	return fmt.Sprintf("%d %s", p.SymptomDuration, p.SymptomUnit)
}

func countText(n int) string {
	if n <= 0 {
		return notProvided
	}
	return strconv.Itoa(n)
}

func quantityText(v float64, unit string) string {
	if v <= 0 {
		return notProvided
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}

// lastMealText folds the tag selection and the free-text field into one line;
// either alone is enough, both together are joined.
func lastMealText(p PatientIntake) string {
	parts := make([]string, 0, 2)
	if len(p.SelectedFoods) > 0 {
		parts = append(parts, strings.Join(p.SelectedFoods, ", "))
	}
	if strings.TrimSpace(p.LastMeal) != "" {
		parts = append(parts, p.LastMeal)
	}
	if len(parts) == 0 {
		return notProvided
	}
	return strings.Join(parts, "; ")
}
