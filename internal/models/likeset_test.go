package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeSet_Toggle(t *testing.T) {
	t.Parallel()

	var s LikeSet
	assert.True(t, s.Toggle("alice"))
	assert.True(t, s.Has("alice"))
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.Toggle("alice"))
	assert.False(t, s.Has("alice"))
	assert.Equal(t, 0, s.Len())
}

func TestNewLikeSet_DropsDuplicates(t *testing.T) {
	t.Parallel()

	s := NewLikeSet("bob", "alice", "bob")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"alice", "bob"}, s.Members())
}

func TestLikeSet_ScanValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input interface{}
		want  []string
	}{
		{"bytes", []byte(`["b","a"]`), []string{"a", "b"}},
		{"string with duplicates", `["a","a"]`, []string{"a"}},
		{"nil", nil, []string{}},
		{"empty", []byte{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s LikeSet
			require.NoError(t, s.Scan(tt.input))
			assert.Equal(t, tt.want, s.Members())
		})
	}

	var s LikeSet
	assert.Error(t, s.Scan(42))

	v, err := NewLikeSet("z", "y").Value()
	require.NoError(t, err)
	assert.Equal(t, `["y","z"]`, v)
}

func TestLikeSet_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		Likes LikeSet `json:"likes"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"likes":[]}`, string(b))
}

func TestCommentList_ScanKeepsOrder(t *testing.T) {
	t.Parallel()

	var l CommentList
	require.NoError(t, l.Scan(`[{"username":"a","text":"first"},{"username":"b","text":"second"}]`))
	require.Len(t, l, 2)
	assert.Equal(t, "first", l[0].Text)
	assert.Equal(t, "second", l[1].Text)

	var empty CommentList
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
