package video

type PublishRequest struct {
	Title       string
	Description string
	Duration    float64
}

type UpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListRequest struct {
	OwnerID       int64
	Query         string
	SortBy        string
	SortAscending bool
	Page          int
	Limit         int
}
