// Package hateoas builds the hypermedia links attached to note representations
// Package hateoas 生成笔记资源表示中附带的超媒体链接
package hateoas

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// 链接关系名称
const (
	RelSelf   = "self"
	RelAdd    = "add"
	RelFirst  = "first"
	RelPrev   = "prev"
	RelNext   = "next"
	RelLast   = "last"
	RelEdit   = "edit"
	RelUpdate = "update"
	RelDelete = "delete"
	RelNotes  = "notes"
	RelAuth   = "auth"
)

// 资源入口地址
const (
	PathAuth  = "/auth"
	PathNotes = "/notes"
	PathUsers = "/users"
)

// Link is one hypermedia control: relation, target and method
// Link 一条超媒体链接：关系、目标地址和请求方法
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// Query is the list state reproduced in collection links
// Query 集合链接中需要复现的查询状态
type Query struct {
	Q     string
	Limit int
	Page  int
	Sort  string
	Order string
}

// WithPage 返回页码替换后的副本
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// QueryString renders q as "?q=..&limit=..&page=..&sort=..&order=..".
// Empty or zero values are left out and an empty result has no "?".
// QueryString 按 q、limit、page、sort、order 的顺序拼接查询字符串，空值省略，结果为空时不带 "?"
func QueryString(q Query) string {
	params := make([]string, 0, 5)

	if q.Q != "" {
		params = append(params, "q="+EncodeComponent(q.Q))
	}
	if q.Limit > 0 {
		params = append(params, "limit="+strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		params = append(params, "page="+strconv.Itoa(q.Page))
	}
	if q.Sort != "" {
		params = append(params, "sort="+EncodeComponent(q.Sort))
	}
	if q.Order != "" {
		params = append(params, "order="+EncodeComponent(q.Order))
	}

	if len(params) == 0 {
		return ""
	}
	return "?" + strings.Join(params, "&")
}

// EncodeComponent percent-encodes s for a query value, spaces become %20
// EncodeComponent 对查询参数值做百分号编码，空格编码为 %20
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// CollectionLinks returns self and add, plus first/prev when q.Page > 1
// and next/last when q.Page < lastPage.
// CollectionLinks 返回 self 与 add 链接；page > 1 时追加 first/prev，page < lastPage 时追加 next/last
func CollectionLinks(base string, q Query, lastPage int) []Link {
	links := []Link{
		{Rel: RelSelf, Href: base + QueryString(q), Method: http.MethodGet},
		{Rel: RelAdd, Href: base, Method: http.MethodPost},
	}

	if q.Page > 1 {
		links = append(links,
			Link{Rel: RelFirst, Href: base + QueryString(q.WithPage(1)), Method: http.MethodGet},
			Link{Rel: RelPrev, Href: base + QueryString(q.WithPage(q.Page-1)), Method: http.MethodGet},
		)
	}

	if q.Page < lastPage {
		links = append(links,
			Link{Rel: RelNext, Href: base + QueryString(q.WithPage(q.Page+1)), Method: http.MethodGet},
			Link{Rel: RelLast, Href: base + QueryString(q.WithPage(lastPage)), Method: http.MethodGet},
		)
	}

	return links
}

// ItemLinks 集合中单个元素的链接，只有 self
func ItemLinks(base, id string) []Link {
	return []Link{
		{Rel: RelSelf, Href: ResourceHref(base, id), Method: http.MethodGet},
	}
}

// ResourceLinks returns the fixed five links of a single resource
// ResourceLinks 单个资源固定的五个链接
func ResourceLinks(base, id string) []Link {
	href := ResourceHref(base, id)
	return []Link{
		{Rel: RelSelf, Href: href, Method: http.MethodGet},
		{Rel: RelEdit, Href: href, Method: http.MethodPatch},
		{Rel: RelUpdate, Href: href, Method: http.MethodPut},
		{Rel: RelDelete, Href: href, Method: http.MethodDelete},
		{Rel: RelNotes, Href: base, Method: http.MethodGet},
	}
}

// ResourceHref 拼接资源地址，id 按路径段编码
func ResourceHref(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(id)
}

// AuthLinks 登录响应中的后续操作链接
func AuthLinks() []Link {
	return []Link{
		{Rel: RelSelf, Href: PathAuth, Method: http.MethodPost},
		{Rel: RelNotes, Href: PathNotes, Method: http.MethodGet},
		{Rel: RelAdd, Href: PathNotes, Method: http.MethodPost},
	}
}

// EntryLinks API 入口的发现链接
func EntryLinks() []Link {
	return []Link{
		{Rel: RelSelf, Href: "/", Method: http.MethodGet},
		{Rel: RelAuth, Href: PathAuth, Method: http.MethodPost},
		{Rel: RelNotes, Href: PathNotes, Method: http.MethodGet},
	}
}

// Find 按关系名查找链接
func Find(links []Link, rel string) (Link, bool) {
	for _, l := range links {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}
