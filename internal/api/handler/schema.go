package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Rendering happens in the central HTTP error handler; the type
// is declared here so the API docs can reference it.
type errorResponse struct {
	Error string `json:"error"`
}
