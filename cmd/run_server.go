package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	internalApp "github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dao"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/routers"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/task"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/logger"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/safe_close"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// defaultSecretKeys 定义需要检测的默认密钥列表
var defaultSecretKeys = []string{
	defaultConfigPlaceholder,
	"",
}

// metricsRegistry 进程级指标注册表，配置重载后复用，避免重复注册
var metricsRegistry = newMetricsRegistry()

func newMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

type Server struct {
	logger            *zap.Logger            // 日志对象
	config            *internalApp.AppConfig // 应用配置（注入的依赖）
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

// checkSecurityConfigWithConfig 检查安全配置，如果使用默认密钥则输出警告
func checkSecurityConfigWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) bool {
	isDefault := false
	for _, key := range defaultSecretKeys {
		if cfg.Security.AuthTokenKey == key {
			isDefault = true
			break
		}
	}

	if isDefault {
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("⚠️  SECURITY WARNING: Using default secret key!")
		fmt.Println()
		fmt.Println("Please modify 'security.auth-token-key' in config.yaml")
		fmt.Println("Generate a secure key with:")
		fmt.Println("  openssl rand -base64 32")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()

		if lg != nil {
			lg.Warn("Using default secret key - please change security.auth-token-key in config.yaml")
		}
	}
	return isDefault
}

// applyRunFlags 命令行参数覆盖配置文件
func applyRunFlags(cfg *internalApp.AppConfig, runEnv *runFlags) {
	if len(runEnv.runMode) > 0 {
		cfg.Server.RunMode = runEnv.runMode
	}
	if port := runEnv.port; len(port) > 0 {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		cfg.Server.HttpPort = port
	}
}

func NewServer(runEnv *runFlags) (*Server, error) {

	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	applyRunFlags(appConfig, runEnv)

	if len(appConfig.Server.RunMode) > 0 {
		gin.SetMode(appConfig.Server.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, errors.Wrap(err, "initStorage")
	}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, errors.Wrap(err, "initLogger")
	}

	checkSecurityConfigWithConfig(appConfig, s.logger)

	store, err := initStoreWithConfig(appConfig, s.logger)
	if err != nil {
		return nil, errors.Wrap(err, "initStore")
	}

	app, err := internalApp.NewApp(appConfig, s.logger, store)
	if err != nil {
		_ = store.Close()
		return nil, errors.Wrap(err, "failed to create app container")
	}
	s.app = app

	if !appConfig.Database.SkipSeed {
		if err := app.ResetStore(context.Background()); err != nil {
			_ = app.Close()
			return nil, errors.Wrap(err, "seed store")
		}
	}

	initScheduler(s)

	banner := `
    ____  _____________________   _   __      __
   / __ \/ ____/ ___/_  __/   | / | / /___  / /____  _____
  / /_/ / __/  \__ \ / / / /| |/  |/ / __ \/ __/ _ \/ ___/
 / _, _/ /___ ___/ // / / ___ / /|  / /_/ / /_/  __(__  )
/_/ |_/_____//____//_/ /_/  |_/_/ |_/\____/\__/\___/____/  `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath), zap.String("store", appConfig.Database.Type))

	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(s.app, metricsRegistry),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serve(s.httpServer, "api service")
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewPrivateRouterWithLogger(appConfig.Server.RunMode, s.logger, metricsRegistry),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serve(s.privateHttpServer, "private api service")
	}

	// 注册 App Container 的优雅关闭
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app != nil {
			ctx, cancel := context.WithTimeout(context.Background(), internalApp.DefaultShutdownTimeout)
			defer cancel()

			if err := s.app.Shutdown(ctx); err != nil {
				s.logger.Error("failed to shutdown app container", zap.Error(err))
			} else {
				s.logger.Info("App container shutdown gracefully")
			}
		}
	})

	return s, nil
}

// serve 在 safe_close 管理下运行 HTTP 服务器，收到关闭信号后优雅停止
func (s *Server) serve(srv *http.Server, name string) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// 停止 HTTP 服务器
			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) {
	manager := task.NewManager(s.logger, s.sc, s.app)

	// 注册所有任务(业务层控制)
	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
		return
	}

	manager.Start()
}

// initLoggerWithConfig 初始化日志器（使用注入的配置）
func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return errors.Wrap(err, "failed to init logger")
	}
	s.logger = lg

	return nil
}

// initStoreWithConfig 按 database.type 打开存储
func initStoreWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) (domain.Store, error) {
	dbConfig, err := cfg.ToDaoConfig()
	if err != nil {
		return nil, err
	}
	return dao.Open(dbConfig, lg)
}

// initStorageWithConfig 初始化存储目录（使用注入的配置）
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{
		filepath.Dir(cfg.Log.File),
	}
	if cfg.Database.Type == dao.TypeSqlite {
		dirs = append(dirs, filepath.Dir(cfg.Database.Path))
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	return nil
}

// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
