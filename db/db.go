// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/apiopenplatform/portal-gateway-service/config"
)

var (
	instance *gorm.DB
	once     sync.Once
)

// Init opens the postgres connection pool described by the configuration.
// Safe to call more than once; only the first call connects.
func Init(cfg *config.Config) error {
	var initErr error
	once.Do(func() {
		instance, initErr = open(cfg)
	})
	return initErr
}

// DB returns the shared gorm handle bound to ctx
func DB(ctx context.Context) *gorm.DB {
	if instance == nil {
		panic("db: Init must be called before DB")
	}
	return instance.WithContext(ctx)
}

func open(cfg *config.Config) (*gorm.DB, error) {
	pg := cfg.POSTGRESQL
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)

	gormLogger := logger.New(
		slogWriter{},
		logger.Config{
			SlowThreshold:             time.Duration(pg.SlowThresholdMilliseconds) * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: pg.SkipDefaultTransaction,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}

	if pg.MaxIdleCount != nil {
		sqlDB.SetMaxIdleConns(int(*pg.MaxIdleCount))
	}
	if pg.MaxOpenCount != nil {
		sqlDB.SetMaxOpenConns(int(*pg.MaxOpenCount))
	}
	if pg.MaxLifetimeSeconds != nil {
		sqlDB.SetConnMaxLifetime(time.Duration(*pg.MaxLifetimeSeconds) * time.Second)
	}
	if pg.MaxIdleTimeSeconds != nil {
		sqlDB.SetConnMaxIdleTime(time.Duration(*pg.MaxIdleTimeSeconds) * time.Second)
	}

	slog.Info("database connection established", "host", pg.Host, "db", pg.DBName)
	return gdb, nil
}

// slogWriter adapts slog to gorm's logger.Writer interface
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	slog.Warn(fmt.Sprintf(format, args...))
}
