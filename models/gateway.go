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

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GatewayType identifies the vendor product behind a gateway record
type GatewayType string

const (
	GatewayTypeApisix GatewayType = "APISIX"
)

// Gateway represents a registered API gateway instance. The admin connection
// settings are stored on the record and handed to the vendor operator when a
// portal request targets this gateway. Credential encryption at rest is
// handled by the credential layer before the record reaches the repository.
type Gateway struct {
	UUID        uuid.UUID   `gorm:"column:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"column:name;uniqueIndex" json:"name"`
	Description string      `gorm:"column:description" json:"description"`
	GatewayType GatewayType `gorm:"column:gateway_type" json:"gatewayType"`

	// Admin API connection settings
	AdminEndpoint string `gorm:"column:admin_endpoint" json:"adminEndpoint"`
	AdminAPIKey   string `gorm:"column:admin_api_key" json:"-"`
	TimeoutMillis int64  `gorm:"column:timeout_millis" json:"timeoutMillis"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName returns the table name for the Gateway model
func (Gateway) TableName() string {
	return "gateways"
}

// Fingerprint derives the deterministic cache key for this gateway's admin
// connection. Distinct endpoint/credential pairs never share a client.
func (g *Gateway) Fingerprint() string {
	return fmt.Sprintf("%s:%s", g.AdminEndpoint, g.AdminAPIKey)
}

// Timeout returns the admin API call timeout for this gateway, falling back
// to defaultMillis when the record carries none
func (g *Gateway) Timeout(defaultMillis int64) time.Duration {
	millis := g.TimeoutMillis
	if millis <= 0 {
		millis = defaultMillis
	}
	return time.Duration(millis) * time.Millisecond
}
