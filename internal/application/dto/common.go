package dto

// ErrorResponse cuerpo de error HTTP: siempre {"error": "..."}; code es opcional.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuccessResponse acuse de operaciones sin cuerpo (DELETE).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
