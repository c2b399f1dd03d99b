package models

import "time"

// Post is a short publication. Likes and comments are embedded in the row so
// removing the post removes all of its engagement in one statement.
type Post struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"userId"`
	User      *User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text      string      `gorm:"type:text" json:"text"`
	Image     string      `gorm:"size:2048" json:"image"`
	Likes     LikeSet     `gorm:"not null" json:"likes"`
	Comments  CommentList `gorm:"not null" json:"comments"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PostView is a post joined with its author summary. It is never stored.
type PostView struct {
	ID         uint          `json:"id"`
	Author     AuthorSummary `json:"userId"`
	Text       string        `json:"text"`
	Image      string        `json:"image"`
	Likes      LikeSet       `json:"likes"`
	LikesCount int           `json:"likesCount"`
	Comments   CommentList   `json:"comments"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// UnknownAuthor is rendered when a post's author no longer resolves.
const UnknownAuthor = "Unknown"

// NewPostView joins p with author.
func NewPostView(p *Post, author AuthorSummary) PostView {
	comments := p.Comments
	if comments == nil {
		comments = CommentList{}
	}
	return PostView{
		ID:         p.ID,
		Author:     author,
		Text:       p.Text,
		Image:      p.Image,
		Likes:      p.Likes,
		LikesCount: p.Likes.Len(),
		Comments:   comments,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
