package playlist

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// PlaylistDetail is a playlist together with the ids of its videos in
// insertion order.
type PlaylistDetail struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	VideoIDs    []int64 `json:"video_ids"`
}
