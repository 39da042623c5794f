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

package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// ConsumerRepository defines the interface for consumer data access
type ConsumerRepository interface {
	Create(consumer *models.Consumer) error
	GetByUsername(username string) (*models.Consumer, error)
	List() ([]*models.Consumer, error)
	Delete(username string) error
}

// ConsumerRepo implements ConsumerRepository using GORM
type ConsumerRepo struct {
	db *gorm.DB
}

// NewConsumerRepo creates a new consumer repository
func NewConsumerRepo(db *gorm.DB) ConsumerRepository {
	return &ConsumerRepo{db: db}
}

// Create inserts a new consumer record
func (r *ConsumerRepo) Create(consumer *models.Consumer) error {
	consumer.CreatedAt = time.Now()
	consumer.UpdatedAt = time.Now()
	err := r.db.Create(consumer).Error
	if isUniqueViolation(err) {
		return utils.ErrConsumerAlreadyExists
	}
	return err
}

// GetByUsername retrieves a consumer by username; (nil, nil) when absent
func (r *ConsumerRepo) GetByUsername(username string) (*models.Consumer, error) {
	var consumer models.Consumer
	err := r.db.Where("username = ?", username).First(&consumer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consumer, nil
}

// List returns all consumers
func (r *ConsumerRepo) List() ([]*models.Consumer, error) {
	var consumers []*models.Consumer
	if err := r.db.Order("created_at DESC").Find(&consumers).Error; err != nil {
		return nil, err
	}
	return consumers, nil
}

// Delete soft-deletes a consumer record
func (r *ConsumerRepo) Delete(username string) error {
	result := r.db.Where("username = ?", username).Delete(&models.Consumer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrConsumerNotFound
	}
	return nil
}
