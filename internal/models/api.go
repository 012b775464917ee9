package models

import "time"

// EmailDetailResponse pairs an email with its reply draft (nil when the
// draft is missing).
// @Description Email with its AI-drafted reply
type EmailDetailResponse struct {
	Email      Email       `json:"email"`
	AiResponse *AiResponse `json:"aiResponse,omitempty"`
}

// StatusUpdateRequest carries a workflow status change for an email.
// @Description Email status update payload
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing resolved" example:"resolved"`
}

// ResponseUpdateRequest carries a partial update to a reply draft. The send
// transition is not reachable through this payload; it goes through the
// dedicated send endpoint.
// @Description Reply draft update payload
type ResponseUpdateRequest struct {
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=draft edited"`
}

// RefreshResponse reports the outcome of a sample-data reload.
// @Description Sample data reload result
type RefreshResponse struct {
	Success bool `json:"success" example:"true"`
	Count   int  `json:"count" example:"20"`
}

// SuccessResponse is the generic mutation acknowledgement.
// @Description Generic success payload
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// ErrorResponse is the generic error payload.
// @Description Generic error payload
type ErrorResponse struct {
	Error string `json:"error" example:"email not found"`
}

// HealthResponse represents a basic health check response.
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-01T00:00:00Z"`
	Version   string    `json:"version" example:"1.0.0"`
}
