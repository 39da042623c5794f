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

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// pgUniqueViolation is the postgres error code for unique constraint
// violations
const pgUniqueViolation = "23505"

// GatewayRepository defines the interface for gateway data access
type GatewayRepository interface {
	Create(gateway *models.Gateway) error
	GetByUUID(gatewayID string) (*models.Gateway, error)
	GetByName(name string) (*models.Gateway, error)
	List() ([]*models.Gateway, error)
	Update(gateway *models.Gateway) error
	Delete(gatewayID string) error
}

// GatewayRepo implements GatewayRepository using GORM
type GatewayRepo struct {
	db *gorm.DB
}

// NewGatewayRepo creates a new gateway repository
func NewGatewayRepo(db *gorm.DB) GatewayRepository {
	return &GatewayRepo{db: db}
}

// Create inserts a new gateway record
func (r *GatewayRepo) Create(gateway *models.Gateway) error {
	gateway.CreatedAt = time.Now()
	gateway.UpdatedAt = time.Now()
	err := r.db.Create(gateway).Error
	if isUniqueViolation(err) {
		return utils.ErrGatewayAlreadyExists
	}
	return err
}

// GetByUUID retrieves a gateway by ID; (nil, nil) when absent
func (r *GatewayRepo) GetByUUID(gatewayID string) (*models.Gateway, error) {
	var gateway models.Gateway
	err := r.db.Where("uuid = ?", gatewayID).First(&gateway).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gateway, nil
}

// GetByName retrieves a gateway by its unique name; (nil, nil) when absent
func (r *GatewayRepo) GetByName(name string) (*models.Gateway, error) {
	var gateway models.Gateway
	err := r.db.Where("name = ?", name).First(&gateway).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gateway, nil
}

// List returns all registered gateways
func (r *GatewayRepo) List() ([]*models.Gateway, error) {
	var gateways []*models.Gateway
	if err := r.db.Order("created_at DESC").Find(&gateways).Error; err != nil {
		return nil, err
	}
	return gateways, nil
}

// Update saves changes to a gateway record
func (r *GatewayRepo) Update(gateway *models.Gateway) error {
	gateway.UpdatedAt = time.Now()
	return r.db.Save(gateway).Error
}

// Delete soft-deletes a gateway record
func (r *GatewayRepo) Delete(gatewayID string) error {
	result := r.db.Where("uuid = ?", gatewayID).Delete(&models.Gateway{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrGatewayNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
