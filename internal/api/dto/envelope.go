package dto

// Envelope is the uniform response wrapper: every endpoint, success or
// failure, returns {success, message, data}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK wraps a successful payload.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail wraps an error payload.
func Fail(message string, data any) Envelope {
	return Envelope{Success: false, Message: message, Data: data}
}
