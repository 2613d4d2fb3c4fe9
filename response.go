package travel_journal

// Envelope is the body shape the backend uses for every content-type response.
// Collections come back with Data as a slice and pagination under Meta.
type Envelope[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries collection metadata.
type Meta struct {
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta mirrors the backend's page-based pagination block.
type PaginationMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// ErrorPayload is the backend error block: {"status":400,"name":"ValidationError","message":"..."}.
type ErrorPayload struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorBody wraps ErrorPayload for endpoints (auth, upload) that answer errors without data.
type ErrorBody struct {
	Error *ErrorPayload `json:"error"`
}
