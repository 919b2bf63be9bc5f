// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dao"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/service"
	pkgapp "github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/validator"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/writequeue"

	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	Store  domain.Store

	// 并发控制组件
	writeQueueMgr *writequeue.Manager

	// Repository 层
	NoteRepo domain.NoteRepository
	UserRepo domain.UserRepository

	// Service 层
	NoteService service.NoteService
	UserService service.UserService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Translator   *ut.UniversalTranslator

	// StartTime 启动时间
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// store: 数据存储（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, store domain.Store, opts ...service.NoteServiceOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		Store:      store,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化验证器
	uni, err := initValidator()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}
	a.Translator = uni

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    cfg.Security.TokenIssuer,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Repository 层
	a.NoteRepo = store.Notes()
	a.UserRepo = store.Users()

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		Note: service.NoteServiceConfig{
			SortBeforePaginate: cfg.App.SortBeforePaginate,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.NoteService = service.NewNoteService(a.NoteRepo, a.writeQueueMgr, logger, svcConfig, opts...)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger)

	logger.Info("App container initialized successfully",
		zap.String("storeType", cfg.Database.Type),
		zap.Bool("sortBeforePaginate", cfg.App.SortBeforePaginate),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// initValidator 将自定义校验器设置为 gin 的 binding.Validator，并注册中英文翻译
func initValidator() (*ut.UniversalTranslator, error) {
	customValidator := validator.NewCustomValidator()
	binding.Validator = customValidator

	validate, ok := customValidator.Engine().(*validatorV10.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected validator engine %T", customValidator.Engine())
	}
	return validator.NewTranslator(validate)
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
		a.logger.Info("Store closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// ExecuteWrite 执行写操作（通过 Write Queue 按用户串行化）
func (a *App) ExecuteWrite(ctx context.Context, uid string, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, uid, fn)
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// PingStore 检查存储是否可用，不支持 Ping 的存储视为可用
func (a *App) PingStore(ctx context.Context) error {
	if p, ok := a.Store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// ResetStore 用内置示例数据重建存储
func (a *App) ResetStore(ctx context.Context) error {
	if a.IsShuttingDown() {
		return writequeue.ErrWriteQueueClosed
	}
	done := a.TrackOperation()
	defer done()

	seed, err := dao.DefaultSeed()
	if err != nil {
		return err
	}
	if err := a.Store.Reset(ctx, seed); err != nil {
		return err
	}
	a.logger.Info("store reset from seed",
		zap.Int("users", len(seed.Users)),
		zap.Int("notes", len(seed.Notes)))
	return nil
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Write Queue Manager -> 后台操作 -> Store
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		} else {
			a.logger.Info("write queue manager shutdown completed")
		}
	}

	// 2. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 3. 关闭存储
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
