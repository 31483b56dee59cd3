package domain

// APIResponse is the envelope every JSON API response uses
type APIResponse[T any] struct {
	Success    bool        `json:"success"`
	Data       *T          `json:"data,omitempty"`
	Error      *APIError   `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// APIError is the error member of a failed APIResponse
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// OK wraps data in a successful envelope
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: &data}
}

// Fail builds a failed envelope
func Fail[T any](code, message string) APIResponse[T] {
	return APIResponse[T]{Success: false, Error: &APIError{Code: code, Message: message}}
}

// NewPagination computes TotalPages. A non-positive limit yields zero pages.
func NewPagination(page, limit, total int) Pagination {
	p := Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + limit - 1) / limit
	}
	return p
}
