package dto

import (
	"testing"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteCollectionDTO_CompactItems(t *testing.T) {
	notes := []*domain.Note{{ID: "1", Text: "a", CreatedAt: 1, UpdatedAt: 2}}
	c := NewNoteCollectionDTO("/notes", notes, hateoas.Query{Limit: 2, Page: 1}, 1)

	b, err := sonic.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"notes": [{"id":"1","text":"a","updatedAt":2,"links":[{"rel":"self","href":"/notes/1","method":"GET"}]}],
		"links": [
			{"rel":"self","href":"/notes?limit=2&page=1","method":"GET"},
			{"rel":"add","href":"/notes","method":"POST"}
		]
	}`, string(b))
}

func TestNewNoteCollectionDTO_EmptyIsArray(t *testing.T) {
	c := NewNoteCollectionDTO("/notes", nil, hateoas.Query{Limit: 2, Page: 9}, 0)
	b, err := sonic.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"notes":[]`)
}

func TestNewNoteDTO(t *testing.T) {
	d := NewNoteDTO("/notes", &domain.Note{ID: "3", Text: "Vacation itinerary", CreatedAt: 10, UpdatedAt: 20})
	assert.Equal(t, int64(10), d.CreatedAt)
	assert.Len(t, d.Links, 5)
}

func TestNewUserProfileDTO_OmitsSecrets(t *testing.T) {
	u := &domain.User{ID: "1", Name: "Saurabh", Email: "saurabh@example.com", Password: "hash", Notes: []string{"1"}, CreatedAt: 1, UpdatedAt: 2}
	b, err := sonic.Marshal(NewUserProfileDTO(u))
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1","name":"Saurabh","email":"saurabh@example.com","createdAt":1}`, string(b))

	auth := NewAuthDTO(u)
	assert.Equal(t, AuthUserDTO{ID: "1", Name: "Saurabh", Email: "saurabh@example.com"}, auth.User)
	assert.Len(t, auth.Links, 3)
}
