package domain

import "time"

const (
	MinPregnancyWeek = 1
	MaxPregnancyWeek = 42
)

type Photo struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	WeekNumber   int       `json:"week_number"`
	Likes        int       `json:"likes"`
	LikedByMe    bool      `json:"liked_by_me"`
	CreatedAt    time.Time `json:"created_at"`
}

// PhotoUpload is an image file to be stored before the photo row is created.
type PhotoUpload struct {
	Title       string
	Description string
	WeekNumber  int
	Filename    string
	ContentType string
	Data        []byte
}
