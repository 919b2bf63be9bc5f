package hateoas

import (
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rels(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Rel)
	}
	return out
}

func TestQueryString(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"empty", Query{}, ""},
		{"full", Query{Q: "foo", Limit: 10, Page: 2, Sort: "updatedAt", Order: "desc"}, "?q=foo&limit=10&page=2&sort=updatedAt&order=desc"},
		{"no filter", Query{Limit: 2, Page: 1, Sort: "updatedAt", Order: "asc"}, "?limit=2&page=1&sort=updatedAt&order=asc"},
		{"filter encoded", Query{Q: "a b&c=d", Page: 1}, "?q=a%20b%26c%3Dd&page=1"},
		{"only page", Query{Page: 3}, "?page=3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryString(tt.q))
		})
	}
}

func TestCollectionLinks_FiveNotesPageSizeTwo(t *testing.T) {
	q := Query{Limit: 2, Sort: "updatedAt", Order: "asc"}

	// 第一页：没有 first/prev
	first := CollectionLinks("/notes", q.WithPage(1), 3)
	assert.Equal(t, []string{RelSelf, RelAdd, RelNext, RelLast}, rels(first))

	// 中间页：全部链接
	middle := CollectionLinks("/notes", q.WithPage(2), 3)
	assert.Equal(t, []string{RelSelf, RelAdd, RelFirst, RelPrev, RelNext, RelLast}, rels(middle))

	// 最后一页：没有 next/last
	last := CollectionLinks("/notes", q.WithPage(3), 3)
	assert.Equal(t, []string{RelSelf, RelAdd, RelFirst, RelPrev}, rels(last))

	prev, ok := Find(last, RelPrev)
	require.True(t, ok)
	assert.Equal(t, "/notes?limit=2&page=2&sort=updatedAt&order=asc", prev.Href)
	assert.Equal(t, "GET", prev.Method)

	add, ok := Find(last, RelAdd)
	require.True(t, ok)
	assert.Equal(t, Link{Rel: RelAdd, Href: "/notes", Method: "POST"}, add)
}

func TestCollectionLinks_EmptyCollection(t *testing.T) {
	links := CollectionLinks("/notes", Query{Limit: 2, Page: 1}, 0)
	assert.Equal(t, []string{RelSelf, RelAdd}, rels(links))
}

func TestResourceLinks(t *testing.T) {
	links := ResourceLinks("/notes", "1")
	assert.Equal(t, []Link{
		{Rel: "self", Href: "/notes/1", Method: "GET"},
		{Rel: "edit", Href: "/notes/1", Method: "PATCH"},
		{Rel: "update", Href: "/notes/1", Method: "PUT"},
		{Rel: "delete", Href: "/notes/1", Method: "DELETE"},
		{Rel: "notes", Href: "/notes", Method: "GET"},
	}, links)

	assert.Equal(t, []Link{{Rel: "self", Href: "/notes/7", Method: "GET"}}, ItemLinks("/notes", "7"))
}

func TestAuthAndEntryLinks(t *testing.T) {
	assert.Equal(t, []string{RelSelf, RelNotes, RelAdd}, rels(AuthLinks()))
	add, ok := Find(AuthLinks(), RelAdd)
	require.True(t, ok)
	assert.Equal(t, Link{Rel: RelAdd, Href: "/notes", Method: "POST"}, add)

	_, ok = Find(EntryLinks(), RelAuth)
	assert.True(t, ok)
}

func TestCollectionLinks_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// first/prev 当且仅当 page > 1；next/last 当且仅当 page < lastPage
	properties.Property("conditional links", prop.ForAll(
		func(page, lastPage int) bool {
			links := CollectionLinks("/notes", Query{Limit: 2, Page: page}, lastPage)
			_, hasFirst := Find(links, RelFirst)
			_, hasPrev := Find(links, RelPrev)
			_, hasNext := Find(links, RelNext)
			_, hasLast := Find(links, RelLast)
			return hasFirst == (page > 1) && hasPrev == (page > 1) &&
				hasNext == (page < lastPage) && hasLast == (page < lastPage)
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 20),
	))

	// 查询字符串可以被解析回原值
	properties.Property("query string round trip", prop.ForAll(
		func(filter string, limit, page int, desc bool) bool {
			order := "asc"
			if desc {
				order = "desc"
			}
			q := Query{Q: filter, Limit: limit, Page: page, Sort: "createdAt", Order: order}
			s := QueryString(q)
			if !strings.HasPrefix(s, "?") {
				return false
			}
			values, err := url.ParseQuery(strings.TrimPrefix(s, "?"))
			if err != nil {
				return false
			}
			if filter == "" {
				if _, ok := values["q"]; ok {
					return false
				}
			} else if values.Get("q") != filter {
				return false
			}
			return values.Get("limit") == strconv.Itoa(limit) &&
				values.Get("page") == strconv.Itoa(page) &&
				values.Get("sort") == "createdAt" &&
				values.Get("order") == order
		},
		gen.AnyString(),
		gen.IntRange(1, 100),
		gen.IntRange(1, 100),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
