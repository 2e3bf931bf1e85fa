package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// UpdateProfileRequest represents the profile edit request body.
type UpdateProfileRequest struct {
	MeNow  string `json:"meNow" binding:"required" example:"Skills: Go, SQL. Experience: Backend engineer on payments."`
	MeNext string `json:"meNext" binding:"required" example:"Lead a small platform team within a year."`
}

// CreateActivityRequest represents the log activity request body.
type CreateActivityRequest struct {
	Description string `json:"description" binding:"required" example:"Paired on the billing migration"`
	Date        string `json:"date" binding:"required" example:"2024-05-14"`
	Category    string `json:"category" binding:"required" example:"Learning"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// ArchiveURLResponse carries a time-limited download link for an archived PDF.
type ArchiveURLResponse struct {
	URL string `json:"url" example:"https://bucket.s3.amazonaws.com/users/u1/imports/jigsaw/3f2a.pdf?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
