package handler

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// SuccessResponse represents a generic success acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

const internalErrorMessage = "Internal server error"
