package store

// Paths travel as segment arrays so no separator character is reserved.

// GetRequest is the body of POST /store/get.
type GetRequest struct {
	Path []string `json:"path"`
}

// GetResponse reports the stored item, if any.
type GetResponse struct {
	Found bool   `json:"found"`
	Item  string `json:"item,omitempty"`
}

// SetRequest is the body of POST /store/set. A null item deletes the entry.
type SetRequest struct {
	Path []string `json:"path"`
	Item *string  `json:"item"`
}

// SetResponse reports the value replaced by the write.
type SetResponse struct {
	Found    bool   `json:"found"`
	Previous string `json:"previous,omitempty"`
}

// ListRequest is the body of POST /store/list.
type ListRequest struct {
	Depth  string   `json:"depth"`
	Folder []string `json:"folder"`
}

// Entry is one listed item.
type Entry struct {
	Path []string `json:"path"`
	Item string   `json:"item"`
}

// ListResponse holds the listed entries ordered by path.
type ListResponse struct {
	Entries []Entry `json:"entries"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

const (
	CodeBadRequest   = "bad_request"
	CodeBackendError = "backend_error"
)
