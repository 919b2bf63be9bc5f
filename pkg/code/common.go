package code

import "net/http"

var (
	// 成功
	Success       = NewSuss(1, http.StatusOK, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(2, http.StatusCreated, lang{en: "Created", zh_cn: "创建成功"})
	SuccessAuth   = NewSuss(3, http.StatusOK, lang{en: "Authentication successful", zh_cn: "认证成功"})

	// 通用错误
	Failed                  = NewError(400, http.StatusBadRequest, lang{en: "Request failed", zh_cn: "请求失败"})
	ErrorInvalidParams      = NewError(401, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorInvalidQuery       = NewError(402, http.StatusBadRequest, lang{en: "Invalid query parameters", zh_cn: "查询参数错误"})
	ErrorNotUserAuthToken   = NewError(403, http.StatusUnauthorized, lang{en: "Authorization token is missing", zh_cn: "缺少授权令牌"})
	ErrorInvalidAuthToken   = NewError(404, http.StatusUnauthorized, lang{en: "Invalid or expired token", zh_cn: "令牌无效或已过期"})
	ErrorInvalidCredentials = NewError(405, http.StatusUnauthorized, lang{en: "Invalid credentials", zh_cn: "用户名或密码错误"})
	ErrorNotFound           = NewError(406, http.StatusNotFound, lang{en: "Resource not found", zh_cn: "资源不存在"})
	ErrorNoteNotFound       = NewError(407, http.StatusNotFound, lang{en: "Note with ID '%s' does not exist.", zh_cn: "ID 为 '%s' 的笔记不存在。"})
	ErrorUserNotFound       = NewError(408, http.StatusNotFound, lang{en: "User with ID '%s' does not exist.", zh_cn: "ID 为 '%s' 的用户不存在。"})
	ErrorMethodNotAllowed   = NewError(409, http.StatusMethodNotAllowed, lang{en: "Method not allowed", zh_cn: "不支持的请求方法"})
	ErrorTooManyRequests    = NewError(410, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过于频繁"})
	ErrorRequestTimeout     = NewError(411, http.StatusServiceUnavailable, lang{en: "Request timed out", zh_cn: "请求超时"})

	// 服务端错误
	ServerError          = NewError(500, http.StatusInternalServerError, lang{en: "Uh oh! Something went wrong.", zh_cn: "哎呀！服务器出错了。"})
	ErrorDBQuery         = NewError(501, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorTokenGenerate   = NewError(502, http.StatusInternalServerError, lang{en: "Failed to generate token", zh_cn: "生成令牌失败"})
	ErrorWriteQueueFull  = NewError(503, http.StatusServiceUnavailable, lang{en: "Too many pending writes, please retry later", zh_cn: "写入队列已满，请稍后重试"})
	ErrorWriteQueueClose = NewError(504, http.StatusServiceUnavailable, lang{en: "Server is shutting down", zh_cn: "服务正在关闭"})
)
