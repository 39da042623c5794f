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

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/repositories"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// ConsumerService manages portal consumer records and keeps the vendor
// gateways in sync with them. The portal record is the source of truth; the
// gateway-side consumer object is derived from it on every push.
type ConsumerService struct {
	consumerRepo   repositories.ConsumerRepository
	gatewayService *GatewayService
	logger         *slog.Logger
}

// NewConsumerService creates a new consumer service
func NewConsumerService(consumerRepo repositories.ConsumerRepository, gatewayService *GatewayService, logger *slog.Logger) *ConsumerService {
	return &ConsumerService{
		consumerRepo:   consumerRepo,
		gatewayService: gatewayService,
		logger:         logger,
	}
}

// CreateConsumerInput holds the fields needed to create a consumer
type CreateConsumerInput struct {
	Username    string
	Description string
	Labels      map[string]string
}

// CreateConsumer stores a new consumer record
func (s *ConsumerService) CreateConsumer(in CreateConsumerInput) (*models.Consumer, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: consumer username is required", utils.ErrInvalidArgument)
	}

	consumer := &models.Consumer{
		UUID:        uuid.New(),
		Username:    in.Username,
		Description: in.Description,
		Labels:      in.Labels,
	}
	if err := s.consumerRepo.Create(consumer); err != nil {
		return nil, err
	}

	s.logger.Info("consumer created", "consumer", consumer.Username)
	return consumer, nil
}

// GetConsumer returns a consumer record by username
func (s *ConsumerService) GetConsumer(username string) (*models.Consumer, error) {
	consumer, err := s.consumerRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to query consumer: %w", err)
	}
	if consumer == nil {
		return nil, utils.ErrConsumerNotFound
	}
	return consumer, nil
}

// ListConsumers returns all consumer records
func (s *ConsumerService) ListConsumers() ([]*models.Consumer, error) {
	return s.consumerRepo.List()
}

// PushConsumer creates or refreshes the consumer's vendor object on a
// gateway. The consumer must already exist as a portal record; the credential
// comes from the portal's credential layer.
func (s *ConsumerService) PushConsumer(ctx context.Context, gatewayID, username string, credential *models.ConsumerCredential) (string, error) {
	consumer, err := s.GetConsumer(username)
	if err != nil {
		return "", err
	}

	exists, err := s.gatewayService.ConsumerExists(ctx, gatewayID, consumer.Username)
	if err != nil {
		return "", err
	}
	if exists {
		if err := s.gatewayService.UpdateConsumer(ctx, gatewayID, consumer.Username, credential); err != nil {
			return "", err
		}
		return consumer.Username, nil
	}

	spec := gateway.ConsumerSpec{
		Username:    consumer.Username,
		Description: consumer.Description,
		Labels:      consumer.Labels,
	}
	return s.gatewayService.CreateConsumer(ctx, gatewayID, spec, credential)
}

// RemoveConsumer removes the consumer's vendor object from a gateway. An
// already-absent vendor object is not an error.
func (s *ConsumerService) RemoveConsumer(ctx context.Context, gatewayID, username string) error {
	err := s.gatewayService.DeleteConsumer(ctx, gatewayID, username)
	if err != nil && !errors.Is(err, utils.ErrConsumerNotFound) {
		return err
	}
	return nil
}

// DeleteConsumer removes the portal consumer record. Gateway-side objects
// are removed first through RemoveConsumer by the caller; the record delete
// is local only.
func (s *ConsumerService) DeleteConsumer(username string) error {
	if err := s.consumerRepo.Delete(username); err != nil {
		return err
	}
	s.logger.Info("consumer deleted", "consumer", username)
	return nil
}
