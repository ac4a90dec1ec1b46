package dto

// ===== Common responses =====

type APIError struct {
	Error  string   `json:"error" example:"invalid input"`
	Fields []string `json:"fields,omitempty" example:"phone"`
}

type APIMessage struct {
	Message string `json:"message" example:"ok"`
}
