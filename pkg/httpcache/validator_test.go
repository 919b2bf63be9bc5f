package httpcache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

var (
	testProfile = profile{ID: "1", Name: "Saurabh", Email: "saurabh@example.com", CreatedAt: 1671494400000}
	testModTime = time.UnixMilli(1671494400000)
)

func TestNewValidators_Stable(t *testing.T) {
	a, err := NewValidators(testProfile, testModTime)
	require.NoError(t, err)
	b, err := NewValidators(testProfile, testModTime)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a.ETag, `"`) && strings.HasSuffix(a.ETag, `"`))
	assert.Len(t, a.ETag, 34)
	assert.Equal(t, CacheControl, a.CacheControl)
	assert.Equal(t, "Tue, 20 Dec 2022 00:00:00 GMT", a.LastModified)
}

func TestNewValidators_ModTimeChangesBoth(t *testing.T) {
	a, _ := NewValidators(testProfile, testModTime)
	b, _ := NewValidators(testProfile, testModTime.Add(24*time.Hour))

	assert.NotEqual(t, a.ETag, b.ETag)
	assert.NotEqual(t, a.LastModified, b.LastModified)
}

func TestNewValidators_BodyChangesETag(t *testing.T) {
	changed := testProfile
	changed.Name = "Someone"

	a, _ := NewValidators(testProfile, testModTime)
	b, _ := NewValidators(changed, testModTime)
	assert.NotEqual(t, a.ETag, b.ETag)
	assert.Equal(t, a.LastModified, b.LastModified)
}

func TestValidators_NotModified(t *testing.T) {
	v, _ := NewValidators(testProfile, testModTime)

	tests := []struct {
		name            string
		ifNoneMatch     string
		ifModifiedSince string
		want            bool
	}{
		{"no headers", "", "", false},
		{"etag match", v.ETag, "", true},
		{"etag without quotes", strings.Trim(v.ETag, `"`), "", false},
		{"weak etag", "W/" + v.ETag, "", false},
		{"date match", "", v.LastModified, true},
		{"later date is not exact", "", LastModified(testModTime.Add(time.Hour)), false},
		{"stale etag but date match", `"stale"`, v.LastModified, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.NotModified(tt.ifNoneMatch, tt.ifModifiedSince))
		})
	}
}

func TestValidators_ApplyAndCheckRequest(t *testing.T) {
	v, _ := NewValidators(testProfile, testModTime)

	rec := httptest.NewRecorder()
	v.Apply(rec.Header())
	assert.Equal(t, v.ETag, rec.Header().Get("ETag"))
	assert.Equal(t, CacheControl, rec.Header().Get("Cache-Control"))
	assert.Equal(t, v.LastModified, rec.Header().Get("Last-Modified"))

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.Header.Set("If-None-Match", rec.Header().Get("ETag"))
	assert.True(t, v.CheckRequest(req))
}
