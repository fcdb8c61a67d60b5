package dto

// ErrorBody detalle de un error HTTP.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP: {"error":{"code","message"}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse construye el cuerpo de error.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}

// SuccessResponse envoltorio de respuestas exitosas.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK envuelve data en una respuesta exitosa.
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// HealthResponse respuesta de /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
