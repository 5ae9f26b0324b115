package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit int `query:"limit" validate:"min=0,max=500"`
}

// DefaultPage aplica el límite por defecto si viene en cero.
func (p *PageRequest) DefaultPage(def int) {
	if p.Limit <= 0 {
		p.Limit = def
	}
}

// ErrorResponse cuerpo de error HTTP. Success siempre es false.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActionResponse resultado de una operación de escritura.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
