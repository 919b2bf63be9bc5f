// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Note NoteServiceConfig // Note related config // 笔记相关配置
}

// NoteServiceConfig note service configuration
// NoteServiceConfig 笔记服务配置
type NoteServiceConfig struct {
	SortBeforePaginate bool // Sort the whole filtered set before slicing the page // 先排序再分页（默认先分页再排序）
}
