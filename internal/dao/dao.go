// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/bookmark-service/pkg/fileurl"
	"github.com/haierkeys/bookmark-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type sqlite / mysql / postgres
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	// Replicas read-only replicas: host[:port] for mysql/postgres, file path for sqlite
	// Replicas 只读副本：mysql/postgres 为地址，sqlite 为文件路径
	Replicas []string
	// RunMode debug 模式下输出 SQL 日志
	RunMode string
}

type Dao struct {
	Db          *gorm.DB
	logger      *zap.Logger
	autoMigrate bool
	onceKeys    sync.Map
}

type onceResult struct {
	once sync.Once
	err  error
}

func New(db *gorm.DB, lg *zap.Logger, autoMigrate bool) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{Db: db, logger: lg, autoMigrate: autoMigrate}
}

// UseWithOnceFunc returns the db handle after running f once for key.
// A failed f is reported through the returned handle so the caller's query fails.
// UseWithOnceFunc 对每个 key 只执行一次 f（通常是自动迁移），然后返回数据库句柄
func (d *Dao) UseWithOnceFunc(f func(g *gorm.DB) error, key string) *gorm.DB {
	if !d.autoMigrate {
		return d.Db
	}

	v, _ := d.onceKeys.LoadOrStore(key, &onceResult{})
	r := v.(*onceResult)
	r.once.Do(func() {
		r.err = f(d.Db)
		if r.err != nil {
			d.logger.Error("dao auto migrate failed", zap.String("key", key), zap.Error(r.err))
		}
	})

	if r.err != nil {
		tx := d.Db.Session(&gorm.Session{})
		_ = tx.AddError(r.err)
		return tx
	}
	return d.Db
}

// NewDBEngineWithConfig opens the database described by c
// NewDBEngineWithConfig 根据配置创建数据库连接
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := userDialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_users`
			SingularTable: true,          // 使用单数表名，启用该选项，此时，`User` 的表名应该是 `t_user`
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "gorm open")
	}

	if c.RunMode == "debug" && lg != nil {
		db.Config.Logger = newGormLogger(lg, logger.Info)
	} else if lg != nil {
		db.Config.Logger = newGormLogger(lg, logger.Warn)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if c.MaxIdleConns > 0 {
		// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		// SetMaxOpenConns 设置打开数据库连接的最大数量。
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := parseOptionalDuration(c.ConnMaxLifetime); err != nil {
		return nil, errors.Wrap(err, "database.conn-max-lifetime")
	} else if d > 0 {
		// SetConnMaxLifetime 设置了连接可复用的最大时间。
		sqlDB.SetConnMaxLifetime(d)
	}
	if d, err := parseOptionalDuration(c.ConnMaxIdleTime); err != nil {
		return nil, errors.Wrap(err, "database.conn-max-idle-time")
	} else if d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if isMemorySQLite(c) {
		// 内存库每个连接都是独立的数据库，只保留一个连接
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	if len(c.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.Replicas))
		for _, addr := range c.Replicas {
			rc := c
			if rc.Type == "sqlite" {
				rc.Path = addr
			} else {
				rc.Host = addr
			}
			d, err := userDialector(rc)
			if err != nil {
				return nil, errors.Wrapf(err, "replica %s", addr)
			}
			replicas = append(replicas, d)
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errors.Wrap(err, "register replicas")
		}
	}

	return db, nil
}

func userDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
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
	case "postgres":
		host, port := c.Host, "5432"
		if h, p, err := net.SplitHostPort(c.Host); err == nil {
			host, port = h, p
		}
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Local",
			host,
			c.UserName,
			c.Password,
			c.Name,
			port,
		)), nil
	case "sqlite", "":
		path := c.Path
		if path != ":memory:" && !strings.HasPrefix(path, "file:") && !fileurl.IsExist(path) {
			if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir")
			}
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		// 开启外键约束，保证删除用户时级联删除书签
		return sqlite.Open(path + sep + "_pragma=foreign_keys(1)"), nil
	}
	return nil, errors.Errorf("unsupported database type %q", c.Type)
}

func isMemorySQLite(c DatabaseConfig) bool {
	return (c.Type == "sqlite" || c.Type == "") && strings.HasPrefix(c.Path, ":memory:")
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return util.ParseDuration(s)
}

// gormWriter forwards gorm's printf-style log lines to zap
type gormWriter struct {
	logger *zap.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}

func newGormLogger(lg *zap.Logger, level logger.LogLevel) logger.Interface {
	return logger.New(gormWriter{logger: lg.Named("gorm").WithOptions(zap.AddCallerSkip(3))}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
