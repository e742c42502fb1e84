package chat

import "medsafe/internal/geminiservice"

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// ChatRequest is the POST /api/chat payload. Every field is optional: absent
// or malformed values fall back to zero values and render as placeholders
// downstream, instead of producing a 4xx.
type ChatRequest struct {
	Message     string                      `json:"message"`
	PathType    *string                     `json:"pathType"`
	PatientInfo geminiservice.PatientIntake `json:"patientInfo"`
	ChatHistory []geminiservice.Turn        `json:"chatHistory"`
	File        *geminiservice.Attachment   `json:"file"`
}

// Path resolves the wire path value; a missing field degrades to the generic,
// non-personalised branch.
func (r ChatRequest) Path() geminiservice.PathType {
	if r.PathType == nil {
		return geminiservice.PathUnknown
	}
	return geminiservice.ParsePath(*r.PathType)
}

// ChatResponse is the single response shape of POST /api/chat. Every
// reachable path (success, upstream failure, missing credential) answers
// with this body and status 200.
type ChatResponse struct {
	Response string `json:"response"`
}

// ProbeResponse is the GET /api/chat liveness/config probe.
type ProbeResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	HasAPIKey bool   `json:"hasApiKey"`
}
