package models

// ChatRequest is a free-text question for the support chatbot.
type ChatRequest struct {
	Question string `json:"question"`
}

// VerifyImageRequest asks whether a base64-encoded photo depicts the
// claimed issue type.
type VerifyImageRequest struct {
	Photo    string        `json:"photo"`
	MimeType string        `json:"mimeType"`
	Type     ComplaintType `json:"type"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Password string `json:"password"`
}
