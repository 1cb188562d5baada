package gemini

import (
	"encoding/json"
	"fmt"
)

// generateContent request/response wire types.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

// schema is a subset of the OpenAPI schema the API accepts for structured
// output.
type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// text returns the first candidate's text, or empty.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// APIError represents an error response from the Gemini API.
type APIError struct {
	StatusCode int
	Status     string `json:"status"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// geminiErrorHandler parses Gemini API error responses.
func geminiErrorHandler(statusCode int, body []byte) error {
	if statusCode < 400 {
		return nil
	}

	var wrapper struct {
		Error APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Message != "" {
		wrapper.Error.StatusCode = statusCode
		return &wrapper.Error
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
}
