package entity

import "time"

// DateLayout is the human format used for publish dates, e.g. "March 05 2024".
const DateLayout = "January 02 2006"

// Post is an authored entry. AuthorName is a snapshot of the author's name at creation time.
type Post struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	ImgURL      string    `json:"img_url"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

// DatePublished formats PublishedAt for display.
func (p Post) DatePublished() string {
	return p.PublishedAt.Format(DateLayout)
}
