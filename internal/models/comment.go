package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Comment is an immutable note attached to a post.
type Comment struct {
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentList is the ordered, append-only comment history of a post.
type CommentList []Comment

func (l CommentList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Comment(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CommentList) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("scan comments: %w", err)
	}
	if len(data) == 0 {
		*l = CommentList{}
		return nil
	}
	var out []Comment
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out == nil {
		out = []Comment{}
	}
	*l = out
	return nil
}

func (l CommentList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Comment(l))
}

func (CommentList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}
