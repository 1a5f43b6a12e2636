package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type CleanupResponse struct {
	Status  string `json:"status"`
	Removed int    `json:"removed"`
}
