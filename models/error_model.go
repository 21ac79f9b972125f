package models

// ErrorResponse is the error body for every non-2xx response. Clients surface
// Detail verbatim and must not branch on its contents.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewError(detail string) *ErrorResponse {
	return &ErrorResponse{Detail: detail}
}
