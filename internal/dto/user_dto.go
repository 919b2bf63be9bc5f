package dto

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"
)

// AuthRequest Login request parameters
// 登录请求参数
type AuthRequest struct {
	Email    *string `json:"email" form:"email" binding:"required"`       // User email // 用户邮件
	Password *string `json:"password" form:"password" binding:"required"` // Password // 密码
}

// ---------------- DTO / Response ----------------

// AuthUserDTO User identity returned after login
// AuthUserDTO 登录成功后返回的用户标识
type AuthUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthDTO Login response
// AuthDTO 登录响应，token 放在 X-Access-Token 响应头中
type AuthDTO struct {
	Message string         `json:"message"`
	User    AuthUserDTO    `json:"user"`
	Links   []hateoas.Link `json:"links"`
}

// UserProfileDTO Public profile projection, the body of GET /users/{id}
// UserProfileDTO 用户公开资料，字段顺序固定，用于计算 ETag
type UserProfileDTO struct {
	ID        string `json:"id"`        // User ID // 用户ID
	Name      string `json:"name"`      // User name // 用户名
	Email     string `json:"email"`     // Email address // 邮件地址
	CreatedAt int64  `json:"createdAt"` // Unix ms // 创建时间（毫秒）
}

// NewUserProfileDTO 从用户构建公开资料
func NewUserProfileDTO(u *domain.User) *UserProfileDTO {
	return &UserProfileDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NewAuthDTO 构建登录响应
func NewAuthDTO(u *domain.User) *AuthDTO {
	return &AuthDTO{
		Message: "Authentication successful",
		User: AuthUserDTO{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		},
		Links: hateoas.AuthLinks(),
	}
}

// EntryDTO API entry point response
// EntryDTO API 入口响应，列出可发现的链接
type EntryDTO struct {
	Message string         `json:"message"`
	Links   []hateoas.Link `json:"links"`
}

// NewEntryDTO 构建入口响应
func NewEntryDTO(name, version string) *EntryDTO {
	return &EntryDTO{
		Message: "Welcome to " + name + " v" + version,
		Links:   hateoas.EntryLinks(),
	}
}
