package model

import "time"

type Post struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	AuthorID int64     `json:"author_id"`
	GroupID  *int64    `json:"group_id,omitempty"`
	Image    *string   `json:"image,omitempty"`
	PubDate  time.Time `json:"pub_date"`
}
