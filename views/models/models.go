package models

// IncrementRequest is the single field a view increment takes
type IncrementRequest struct {
	PostID string `json:"postId"`
}

// IncrementResult is returned on success
type IncrementResult struct {
	Success bool   `json:"success"`
	PostID  string `json:"postId"`
}
