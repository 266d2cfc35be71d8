package dto

// Envelope é o corpo padrão de toda resposta da API: {success, data|error}.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody corpo de erro HTTP dentro do envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK monta um envelope de sucesso.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail monta um envelope de erro.
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message}}
}
