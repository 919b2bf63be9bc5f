package service

import (
	"context"
	"errors"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	apperrors "github.com/DmitriSedov/rest-api-design-tutorial/pkg/errors"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/logger"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/util"

	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Authenticate 校验邮箱和密码，返回登录响应和访问令牌
	Authenticate(ctx context.Context, params *dto.AuthRequest) (*dto.AuthDTO, string, error)

	// Profile 获取当前用户的公开资料及最后修改时间
	// id 与 uid 不一致时按不存在处理
	Profile(ctx context.Context, uid string) (*dto.UserProfileDTO, time.Time, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, lg *zap.Logger) UserService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       lg,
	}
}

// Authenticate 校验邮箱和密码
func (s *userService) Authenticate(ctx context.Context, params *dto.AuthRequest) (*dto.AuthDTO, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, *params.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// 不暴露用户是否存在
			return nil, "", apperrors.NewAppError(code.ErrorInvalidCredentials, err)
		}
		return nil, "", toServiceError(err, "")
	}

	if !util.CheckPasswordHash(user.Password, *params.Password) {
		return nil, "", apperrors.NewAppError(code.ErrorInvalidCredentials, nil)
	}

	token, err := s.tokenManager.Generate(user.ID, user.Name)
	if err != nil {
		s.logger.Error("generate token failed",
			zap.String(logger.FieldUID, user.ID),
			zap.Error(err),
		)
		return nil, "", apperrors.NewAppError(code.ErrorTokenGenerate, err)
	}

	return dto.NewAuthDTO(user), token, nil
}

// Profile 获取当前用户的公开资料，资料由令牌中的用户决定
func (s *userService) Profile(ctx context.Context, uid string) (*dto.UserProfileDTO, time.Time, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, time.Time{}, userNotFound(uid, err)
		}
		return nil, time.Time{}, toServiceError(err, "")
	}
	return dto.NewUserProfileDTO(user), ModTime(user.UpdatedAt), nil
}
