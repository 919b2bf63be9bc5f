// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	TypeMemory   = "memory"
	TypeSqlite   = "sqlite"
	TypeMysql    = "mysql"
	TypePostgres = "postgres"
)

// Config 数据库配置
type Config struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Port            int
	Name            string
	Charset         string
	ParseTime       bool
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Debug           bool
}

// Dao gorm 数据访问对象，实现 domain.Store
type Dao struct {
	Db     *gorm.DB
	logger *zap.Logger
}

// New 创建 Dao，并迁移表结构
func New(db *gorm.DB, lg *zap.Logger) (*Dao, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, errors.Wrap(err, "auto migrate failed")
	}
	return &Dao{Db: db, logger: lg}, nil
}

func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// Notes 返回笔记仓储
func (d *Dao) Notes() domain.NoteRepository {
	return NewNoteRepository(d)
}

// Users 返回用户仓储
func (d *Dao) Users() domain.UserRepository {
	return NewUserRepository(d)
}

// Reset 在一个事务内清空全部表并写入 seed
func (d *Dao) Reset(ctx context.Context, seed *domain.Seed) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range model.Tables() {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return errors.Wrap(err, "clear table failed")
			}
		}
		if seed == nil {
			return nil
		}
		for _, u := range seed.Users {
			mu := &model.User{}
			if err := copyStruct(u, mu); err != nil {
				return err
			}
			if err := tx.Create(mu).Error; err != nil {
				return errors.Wrapf(err, "seed user %s failed", u.ID)
			}
			for i, noteID := range u.Notes {
				if err := tx.Create(&model.UserNote{UID: u.ID, NoteID: noteID, Seq: int64(i + 1)}).Error; err != nil {
					return errors.Wrapf(err, "seed user note %s failed", noteID)
				}
			}
		}
		for _, n := range seed.Notes {
			mn := &model.Note{}
			if err := copyStruct(n, mn); err != nil {
				return err
			}
			if err := tx.Create(mn).Error; err != nil {
				return errors.Wrapf(err, "seed note %s failed", n.ID)
			}
		}
		d.logger.Info("store reset", zap.Int("users", len(seed.Users)), zap.Int("notes", len(seed.Notes)))
		return nil
	})
}

// Ping 检查数据库连接
func (d *Dao) Ping(ctx context.Context) error {
	sqlDB, err := d.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭数据库连接
func (d *Dao) Close() error {
	sqlDB, err := d.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open 根据配置创建存储：memory 使用内存存储，其他类型使用 gorm
func Open(c Config, lg *zap.Logger) (domain.Store, error) {
	if c.Type == "" || c.Type == TypeMemory {
		return NewMemoryStore(), nil
	}
	db, err := NewDBEngine(c)
	if err != nil {
		return nil, err
	}
	return New(db, lg)
}

func NewDBEngine(c Config) (*gorm.DB, error) {

	dialector, err := userDialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}
	if c.Debug {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
	if c.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)
	}

	return db, nil
}

func userDialector(c Config) (gorm.Dialector, error) {
	switch c.Type {
	case TypeMysql:
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			charset,
			c.ParseTime,
		)), nil
	case TypePostgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		port := c.Port
		if port == 0 {
			port = 5432
		}
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
			port,
			sslMode,
		)), nil
	case TypeSqlite:
		if c.Path != ":memory:" && !strings.HasPrefix(c.Path, "file:") {
			if err := os.MkdirAll(filepath.Dir(c.Path), os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir failed")
			}
		}
		return sqlite.Open(c.Path), nil
	}
	return nil, errors.Errorf("unsupported database type: %s", c.Type)
}
