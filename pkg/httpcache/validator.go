// Package httpcache computes ETag / Last-Modified validators and evaluates conditional requests
// Package httpcache 计算 ETag / Last-Modified 校验器并判断条件请求
package httpcache

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/util"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// CacheControl 个人资料类资源固定的缓存策略
const CacheControl = "private, no-cache, max-age=31536000, must-revalidate"

// canonical 使用标准库兼容配置，保证同一结构体序列化结果稳定
var canonical = sonic.ConfigStd

// Validators are the headers sent with a cacheable representation
// Validators 可缓存资源响应中携带的校验头
type Validators struct {
	ETag         string
	LastModified string
	CacheControl string
}

// Fingerprint hashes the serialized body together with modTime (unix millis).
// The same body and modTime always give the same fingerprint.
// Fingerprint 对序列化后的 body 与 modTime（毫秒）一起做摘要
func Fingerprint(body any, modTime time.Time) (string, error) {
	data, err := canonical.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "httpcache: marshal body")
	}
	return util.EncodeMD5(string(data) + "\n" + strconv.FormatInt(modTime.UnixMilli(), 10)), nil
}

// LastModified 以 HTTP 日期格式输出修改时间
func LastModified(modTime time.Time) string {
	return modTime.UTC().Format(http.TimeFormat)
}

// NewValidators 计算 body 与 modTime 对应的校验头
func NewValidators(body any, modTime time.Time) (Validators, error) {
	fp, err := Fingerprint(body, modTime)
	if err != nil {
		return Validators{}, err
	}
	return Validators{
		ETag:         `"` + fp + `"`,
		LastModified: LastModified(modTime),
		CacheControl: CacheControl,
	}, nil
}

// NotModified reports whether the client copy is current: If-None-Match equals
// the ETag, or If-Modified-Since equals Last-Modified. Both are exact string matches.
// NotModified 判断客户端缓存是否仍然有效，均为精确字符串比较
func (v Validators) NotModified(ifNoneMatch, ifModifiedSince string) bool {
	if ifNoneMatch != "" && ifNoneMatch == v.ETag {
		return true
	}
	return ifModifiedSince != "" && ifModifiedSince == v.LastModified
}

// CheckRequest 读取请求中的条件头并判断
func (v Validators) CheckRequest(r *http.Request) bool {
	return v.NotModified(r.Header.Get("If-None-Match"), r.Header.Get("If-Modified-Since"))
}

// Apply 写入 ETag、Cache-Control、Last-Modified 响应头
func (v Validators) Apply(h http.Header) {
	h.Set("ETag", v.ETag)
	h.Set("Cache-Control", v.CacheControl)
	h.Set("Last-Modified", v.LastModified)
}
