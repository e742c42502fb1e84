package geminiservice

import "fmt"

/* =================================================================================
							HEADING REGISTRY
	The transcript renderer styles lines that exactly match these headings, so
	they are declared once here and handed to the renderer explicitly instead
	of being duplicated as string literals in two places.
=================================================================================*/

var medicineHeadings = []string{
	"What You Are Experiencing And How To Support Recovery",
	"Common Over-The-Counter Options",
	"How Each Option Helps And Typical Use",
	"When To See A Doctor Or Get Urgent Help",
}

var lifestyleHeadings = []string{
	"Your Current Habits At A Glance",
	"Small Changes You Can Start With",
	"What You Might Notice Over Time",
	"When To Get Extra Support",
}

// Headings returns the ordered section headings for a path. Unknown paths have
// no fixed structure and return nil.
func Headings(path PathType) []string {
	switch path {
	case PathMedicine:
		return medicineHeadings
	case PathLifestyle:
		return lifestyleHeadings
	default:
		return nil
	}
}

// AllHeadings returns every heading either path can produce, in path order.
func AllHeadings() []string {
	all := make([]string, 0, len(medicineHeadings)+len(lifestyleHeadings))
	all = append(all, medicineHeadings...)
	all = append(all, lifestyleHeadings...)
	return all
}

/* =================================================================================
						PROMPT ENGINEERING & GUARDRAILS
=================================================================================*/

/*
SafetyPreamble defines the persona, the safety guardrails, and the output
formatting rules. The upstream service is stateless, so this block is pinned
into every single call.
*/
const SafetyPreamble = `You are Medsafe, a warm and careful health-information assistant.

SAFETY RULES (CRITICAL, always apply):
- You provide general health education only. You never diagnose a condition, never prescribe, and never give personalised dosing.
- If the user mentions chest pain, difficulty breathing, signs of stroke (such as slurred speech or one-sided weakness), severe bleeding, sudden confusion, seizures, loss of consciousness, or thoughts of self-harm, tell them clearly and immediately to contact emergency services or see a doctor right away, before anything else in your reply.
- Stay strictly on health, wellness, and recovery topics. Politely decline anything else.
- Keep a calm, supportive, non-alarming tone.

FORMATTING RULES (always apply):
- Write section headings as plain text on their own line, exactly as given to you, with no numbering.
- Start every bullet point with "- ".
- Never use *, **, #, or any other markdown tokens.
- Leave one blank line between sections.`

// medicineStructure and lifestyleStructure pin the exact number and order of
// required sections for the first full reply of each path. The heading text is
// injected from the registry above so composer and renderer cannot drift.
var medicineStructure = fmt.Sprintf(`RESPONSE STRUCTURE (medicine information path):
1) Greet the user warmly and acknowledge how they might be feeling.
2) Summarise their symptoms and how long they have been present.
3) Give 3-5 short bullets under "%s". Each bullet must be a single concise sentence.
4) Give 2-4 bullets under "%s" naming general over-the-counter categories people often use, matched to their symptoms.
5) Give 2-4 bullets under "%s" explaining briefly what each option helps with and that it is typically taken as directed on the package, with no exact milligrams and no personal dosing.
6) Give 3-5 bullets under "%s" listing clear warning signs.
7) Finish with one short line reminding them this is general education, not a diagnosis.`,
	medicineHeadings[0], medicineHeadings[1], medicineHeadings[2], medicineHeadings[3])

var lifestyleStructure = fmt.Sprintf(`RESPONSE STRUCTURE (lifestyle guidance path):
1) Summarise the user's current habits in 3-5 bullets under "%s".
2) Suggest 4-6 specific but gentle changes under "%s".
3) Explain realistic timelines in 3-5 bullets under "%s".
4) Give 3-5 bullets under "%s" describing when it would help to talk to a professional.
5) Finish with one short line saying this is general wellness guidance, not a substitute for medical care.`,
	lifestyleHeadings[0], lifestyleHeadings[1], lifestyleHeadings[2], lifestyleHeadings[3])

// Task directives for the per-call instruction block. The first-turn and
// follow-up texts are deliberately distinct strings: a follow-up prompt must
// never contain the full-structure instruction.
const (
	firstTurnDirective = "Task: this is the first reply of this conversation. Produce the full response structure defined above, with every section heading present, in order."

	followUpDirective = "Task: this is a follow-up turn. Do not repeat the full response structure and do not greet the user again. Answer the latest message directly and concisely, in at most 120 words, referring to earlier context only where it helps."

	genericDirective = "Task: reply helpfully to the user within the safety and formatting rules above."
)

// Placeholder and sentinel text for the turn-specific block. Missing intake
// fields degrade to these literals instead of raising.
const (
	noHistorySentinel = "No previous messages."
	noMessageSentinel = "(no message text; the user sent only an attachment)"
	notProvided       = "not provided"
	noneProvided      = "none"
)

/* =================================================================================
						STOCK FIRST-TURN BRIEFS
	These are the messages the intake wizard sends as the opening user turn
	after the form is submitted, kept verbatim from the product client.
=================================================================================*/

const InitialMedicineMessage = `The user has just filled a symptom form. Greet them, summarise what they reported, and walk them through the full medicine-information structure.`

const InitialLifestyleMessage = `The user has just filled a lifestyle and wellness questionnaire. Summarise their current habits and walk them through the full lifestyle-guidance structure.`
