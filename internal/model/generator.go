package model

// GenerateRequest represents a website content generation request.
type GenerateRequest struct {
	BusinessType string `json:"business_type" validate:"required"`
	Industry     string `json:"industry" validate:"required"`
}

// GenerateResponse is returned after content has been generated and stored.
type GenerateResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Content *Site  `json:"content"`
}
