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

package dbmigrations

import (
	"fmt"
	"strings"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// migration is one schema change step. IDs are ordered and never reused.
type migration struct {
	ID      int
	Migrate func(db *gorm.DB) error
}

// ordered list of all migrations
var migrations = []migration{
	migration001,
	migration002,
}

// Run applies all pending migrations
func Run(db *gorm.DB) error {
	steps := make([]*gormigrate.Migration, 0, len(migrations))
	for _, m := range migrations {
		step := m
		steps = append(steps, &gormigrate.Migration{
			ID: fmt.Sprintf("%03d", step.ID),
			Migrate: func(tx *gorm.DB) error {
				return step.Migrate(tx)
			},
		})
	}
	return gormigrate.New(db, gormigrate.DefaultOptions, steps).Migrate()
}

// runSQL executes a multi-statement SQL block
func runSQL(tx *gorm.DB, sql string) error {
	for _, statement := range strings.Split(sql, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}
		if err := tx.Exec(statement).Error; err != nil {
			return err
		}
	}
	return nil
}
