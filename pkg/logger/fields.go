package logger

// 统一的日志字段命名常量
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldURL 请求地址字段
	FieldURL = "url"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldStatus HTTP 状态码字段
	FieldStatus = "status"

	// FieldTask 任务名称字段
	FieldTask = "task"
)
