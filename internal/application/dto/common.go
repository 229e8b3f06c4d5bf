package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse errores de validación por campo; el envío se
// abortó sin llamar al backend.
type ValidationErrorResponse struct {
	Code   string            `json:"code"`
	Errors map[string]string `json:"errors"`
}
