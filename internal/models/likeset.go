package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// LikeSet is the set of usernames that currently like a post. Membership is
// the only state, so a name can never be counted twice.
type LikeSet struct {
	members map[string]struct{}
}

// NewLikeSet builds a set from names, dropping duplicates.
func NewLikeSet(names ...string) LikeSet {
	s := LikeSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.members[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s LikeSet) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Len returns the number of members.
func (s LikeSet) Len() int {
	return len(s.members)
}

// Toggle flips membership of name and reports whether name is a member afterwards.
func (s *LikeSet) Toggle(name string) bool {
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	if _, ok := s.members[name]; ok {
		delete(s.members, name)
		return false
	}
	s.members[name] = struct{}{}
	return true
}

// Members returns the names in lexical order.
func (s LikeSet) Members() []string {
	out := make([]string, 0, len(s.members))
	for n := range s.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s LikeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Members())
}

func (s *LikeSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewLikeSet(names...)
	return nil
}

// Value implements driver.Valuer; the set is stored as a JSON array.
func (s LikeSet) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *LikeSet) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("scan likes: %w", err)
	}
	if len(data) == 0 {
		*s = NewLikeSet()
		return nil
	}
	return s.UnmarshalJSON(data)
}

// GormDBDataType picks the column type per dialect.
func (LikeSet) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
}
