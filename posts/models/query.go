package models

// SortOrder selects the ordering of a post list
type SortOrder string

const (
	SortLatest   SortOrder = "latest"
	SortTrending SortOrder = "trending"
)

// List limits
const (
	DefaultListLimit = 9
	MaxListLimit     = 50
)

// ListPostsQuery is decoded from GET /posts query parameters
type ListPostsQuery struct {
	Sort  SortOrder `schema:"sort" json:"sort"`
	Limit int       `schema:"limit" json:"limit"`
}

// TaxonomyQuery is decoded from GET /categories/:name/posts and /labels/:name/posts
type TaxonomyQuery struct {
	Limit int `schema:"limit" json:"limit"`
}

// PostFilter narrows a repository listing
type PostFilter struct {
	Category string
	Label    string
	Sort     SortOrder
	Limit    int
}

// PostsListResponse is returned by every list endpoint
type PostsListResponse struct {
	Posts []PostSummary `json:"posts"`
	Sort  SortOrder     `json:"sort,omitempty"`
	Limit int           `json:"limit"`
}

// NamesResponse is returned by the category and label listings
type NamesResponse struct {
	Names []string `json:"names"`
}
