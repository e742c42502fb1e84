package geminiservice

// PathType is the conversation track the user chose on the intake form. It is
// resolved once before the first message and selects which response structure
// governs the model's output.
type PathType string

const (
	PathMedicine  PathType = "medicine"
	PathLifestyle PathType = "lifestyle"
	PathUnknown   PathType = "unknown"
)

// ParsePath maps the wire value (which may be absent or anything at all) onto
// a known path. Unrecognised values degrade to PathUnknown rather than error.
func ParsePath(s string) PathType {
	switch s {
	case "medicine":
		return PathMedicine
	case "lifestyle":
		return PathLifestyle
	default:
		return PathUnknown
	}
}

// Role tags a transcript turn with its speaker. The client sends "bot" for
// assistant turns, mirroring how it renders them.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one entry of the client-held conversation transcript. The sequence
// is append-only and re-transmitted in full on every call; the server keeps
// nothing between requests.
type Turn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// PatientIntake is the structured form data collected by the intake wizard.
// Every field is optional: missing values render as placeholders in the
// prompt instead of failing validation.
type PatientIntake struct {
	Symptoms           string   `json:"symptoms"`
	SymptomDuration    int      `json:"symptomDuration"`
	SymptomUnit        string   `json:"symptomUnit"`
	MealsPerDay        int      `json:"mealsPerDay"`
	WaterIntake        float64  `json:"waterIntake"`
	LastMeal           string   `json:"lastMeal"`
	SelectedFoods      []string `json:"selectedFoods"`
	SleepHours         float64  `json:"sleepHours"`
	StressLevel        string   `json:"stressLevel"`
	ExerciseFrequency  string   `json:"exerciseFrequency"`
	SmokingStatus      string   `json:"smokingStatus"`
	AlcoholConsumption string   `json:"alcoholConsumption"`
	AdditionalInfo     string   `json:"additionalInfo"`
}

// Attachment is one optional file sent alongside a chat message. The base64
// payload is forwarded verbatim to Gemini as inline binary content and never
// retained across turns.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}
