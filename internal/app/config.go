// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dao"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/limiter"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/util"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Security SecurityConfig `yaml:"security"`
	Tracer   TracerConfig   `yaml:"tracer"`
	Cors     CorsConfig     `yaml:"cors"`
	Limiter  LimiterConfig  `yaml:"limiter"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug / release / test
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 监听地址
	HttpPort string `yaml:"http-port" default:":3000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（pprof / metrics），为空则不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:3001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"rest-api-design-tutorial-Auth-Token"`
	TokenExpiry  string `yaml:"token-expiry" default:"24h"` // Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenIssuer  string `yaml:"token-issuer" default:"rest-api-design-tutorial"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 存储类型 memory / sqlite / mysql / postgres
	Type string `yaml:"type" default:"memory"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口，0 表示驱动默认端口
	Port int `yaml:"port"`
	// Name 数据库名
	Name string `yaml:"name"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// SkipSeed 启动时不重建示例数据
	SkipSeed bool `yaml:"skip-seed"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// SortBeforePaginate 先排序再分页
	SortBeforePaginate bool `yaml:"sort-before-paginate"`
	// DemoResetCron 定时重建示例数据的 cron 表达式，为空则不启用
	DemoResetCron string `yaml:"demo-reset-cron"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	// AllowOrigins 允许的来源，* 表示全部
	AllowOrigins []string `yaml:"allow-origins" default:"[\"*\"]"`
}

// LimiterConfig /auth 限流配置
type LimiterConfig struct {
	// AuthCapacity 令牌桶容量，负数表示不限流
	AuthCapacity int64 `yaml:"auth-capacity" default:"10"`
	// AuthFillInterval 放入令牌的间隔
	AuthFillInterval string `yaml:"auth-fill-interval" default:"6s"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil && expiry > 0 {
		return expiry
	}
	return 24 * time.Hour
}

// GetContextTimeout 获取请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 0
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetLimiterRules 获取限流规则，容量不大于 0 时不限流
func (c *AppConfig) GetLimiterRules() []limiter.BucketRule {
	if c.Limiter.AuthCapacity <= 0 {
		return nil
	}
	interval, err := util.ParseDuration(c.Limiter.AuthFillInterval)
	if err != nil || interval <= 0 {
		interval = 6 * time.Second
	}
	return []limiter.BucketRule{{
		Key:          "/auth",
		FillInterval: interval,
		Capacity:     c.Limiter.AuthCapacity,
		Quantum:      1,
	}}
}

// ToDaoConfig 转换为 dao.Config
func (c *AppConfig) ToDaoConfig() (dao.Config, error) {
	d := c.Database
	cfg := dao.Config{
		Type:         d.Type,
		Path:         d.Path,
		UserName:     d.UserName,
		Password:     d.Password,
		Host:         d.Host,
		Port:         d.Port,
		Name:         d.Name,
		Charset:      d.Charset,
		ParseTime:    d.ParseTime,
		SSLMode:      d.SSLMode,
		MaxIdleConns: d.MaxIdleConns,
		MaxOpenConns: d.MaxOpenConns,
		Debug:        c.Server.RunMode == gin.DebugMode,
	}

	var err error
	if d.ConnMaxLifetime != "" {
		if cfg.ConnMaxLifetime, err = util.ParseDuration(d.ConnMaxLifetime); err != nil {
			return cfg, errors.Wrap(err, "parse conn-max-lifetime failed")
		}
	}
	if d.ConnMaxIdleTime != "" {
		if cfg.ConnMaxIdleTime, err = util.ParseDuration(d.ConnMaxIdleTime); err != nil {
			return cfg, errors.Wrap(err, "parse conn-max-idle-time failed")
		}
	}
	return cfg, nil
}
