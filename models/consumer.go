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
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consumer represents a portal consumer that may be granted access to
// gateway routes. The username is the caller-assigned unique identifier
// pushed to the vendor gateway.
type Consumer struct {
	UUID        uuid.UUID         `gorm:"column:uuid;primaryKey" json:"id"`
	Username    string            `gorm:"column:username;uniqueIndex" json:"username"`
	Description string            `gorm:"column:description" json:"description"`
	Labels      map[string]string `gorm:"column:labels;type:jsonb;serializer:json" json:"labels,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName returns the table name for the Consumer model
func (Consumer) TableName() string {
	return "consumers"
}

// APIKeyCredential is a single API key issued for a consumer
type APIKeyCredential struct {
	APIKey string `json:"apiKey"`
}

// ConsumerCredential is the credential set handed to the gateway operator
// when a consumer is pushed to a vendor gateway. The portal's credential
// service produces it; only the first API key is used by the vendor object.
type ConsumerCredential struct {
	APIKeys []APIKeyCredential `json:"apiKeys"`
}

// FirstAPIKey returns the first API key in the credential set, or "" when
// the set is missing or empty
func (c *ConsumerCredential) FirstAPIKey() string {
	if c == nil || len(c.APIKeys) == 0 {
		return ""
	}
	return c.APIKeys[0].APIKey
}
