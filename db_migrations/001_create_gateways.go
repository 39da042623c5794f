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
	"gorm.io/gorm"
)

// Create gateways table
var migration001 = migration{
	ID: 1,
	Migrate: func(db *gorm.DB) error {
		createGatewaysSQL := `
			CREATE TABLE gateways (
				uuid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(255) NOT NULL,
				description TEXT,
				gateway_type VARCHAR(50) NOT NULL,
				admin_endpoint VARCHAR(2048) NOT NULL,
				admin_api_key VARCHAR(2048) NOT NULL,
				timeout_millis BIGINT DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				deleted_at TIMESTAMP
			);

			CREATE UNIQUE INDEX idx_gateways_name ON gateways(name) WHERE deleted_at IS NULL;
			CREATE INDEX idx_gateways_deleted ON gateways(deleted_at) WHERE deleted_at IS NOT NULL
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, createGatewaysSQL)
		})
	},
}
