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
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/repositories"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// GatewayService is the portal-facing facade over the gateway adapter
// layer. It resolves gateway records, selects the vendor operator for each
// request by the record's type, and delegates.
type GatewayService struct {
	gatewayRepo repositories.GatewayRepository
	registry    *gateway.Registry
	logger      *slog.Logger
}

// NewGatewayService creates a new gateway service
func NewGatewayService(gatewayRepo repositories.GatewayRepository, registry *gateway.Registry, logger *slog.Logger) *GatewayService {
	return &GatewayService{
		gatewayRepo: gatewayRepo,
		registry:    registry,
		logger:      logger,
	}
}

// RegisterGatewayInput holds the fields needed to register a gateway
type RegisterGatewayInput struct {
	Name          string
	Description   string
	GatewayType   models.GatewayType
	AdminEndpoint string
	AdminAPIKey   string
	TimeoutMillis int64
}

// RegisterGateway stores a new gateway record after validating that its
// vendor type has a registered operator
func (s *GatewayService) RegisterGateway(in RegisterGatewayInput) (*models.Gateway, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: gateway name is required", utils.ErrInvalidArgument)
	}
	if in.AdminEndpoint == "" {
		return nil, fmt.Errorf("%w: admin endpoint is required", utils.ErrInvalidArgument)
	}
	if _, err := s.registry.Operator(in.GatewayType); err != nil {
		return nil, err
	}

	gw := &models.Gateway{
		UUID:          uuid.New(),
		Name:          in.Name,
		Description:   in.Description,
		GatewayType:   in.GatewayType,
		AdminEndpoint: in.AdminEndpoint,
		AdminAPIKey:   in.AdminAPIKey,
		TimeoutMillis: in.TimeoutMillis,
	}
	if err := s.gatewayRepo.Create(gw); err != nil {
		return nil, err
	}

	s.logger.Info("gateway registered", "gateway", gw.Name, "gatewayType", gw.GatewayType)
	return gw, nil
}

// GetGateway returns a gateway record by id
func (s *GatewayService) GetGateway(gatewayID string) (*models.Gateway, error) {
	return s.resolve(gatewayID)
}

// ListGateways returns all registered gateways
func (s *GatewayService) ListGateways() ([]*models.Gateway, error) {
	return s.gatewayRepo.List()
}

// DeleteGateway removes a gateway record
func (s *GatewayService) DeleteGateway(gatewayID string) error {
	return s.gatewayRepo.Delete(gatewayID)
}

// FetchHTTPAPIs lists the gateway's HTTP APIs as a page
func (s *GatewayService) FetchHTTPAPIs(ctx context.Context, gatewayID string, page, size int) (*gateway.PageResult[gateway.HTTPAPIResult], error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchHTTPAPIs(ctx, gw, page, size)
}

// FetchMCPServers lists the gateway's MCP servers as a page
func (s *GatewayService) FetchMCPServers(ctx context.Context, gatewayID string, page, size int) (*gateway.PageResult[gateway.MCPServerResult], error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchMCPServers(ctx, gw, page, size)
}

// FetchModelAPIs lists the gateway's model APIs as a page
func (s *GatewayService) FetchModelAPIs(ctx context.Context, gatewayID string, page, size int) (*gateway.PageResult[gateway.ModelAPIResult], error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchModelAPIs(ctx, gw, page, size)
}

// FetchAPIConfig builds the exported config document for an HTTP API
func (s *GatewayService) FetchAPIConfig(ctx context.Context, gatewayID string, ref gateway.RefConfig) (*gateway.APIConfig, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchAPIConfig(ctx, gw, ref)
}

// FetchMCPConfig builds the exported config document for an MCP server
func (s *GatewayService) FetchMCPConfig(ctx context.Context, gatewayID string, ref gateway.RefConfig) (*gateway.MCPConfig, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchMCPConfig(ctx, gw, ref)
}

// FetchModelConfig builds the exported config document for a model API
func (s *GatewayService) FetchModelConfig(ctx context.Context, gatewayID string, ref gateway.RefConfig) (*gateway.ModelConfig, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchModelConfig(ctx, gw, ref)
}

// CreateConsumer pushes a consumer to the gateway
func (s *GatewayService) CreateConsumer(ctx context.Context, gatewayID string, spec gateway.ConsumerSpec, credential *models.ConsumerCredential) (string, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return "", err
	}
	return op.CreateConsumer(ctx, gw, spec, credential)
}

// UpdateConsumer replaces a consumer's credential configuration on the
// gateway
func (s *GatewayService) UpdateConsumer(ctx context.Context, gatewayID, username string, credential *models.ConsumerCredential) error {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return err
	}
	return op.UpdateConsumer(ctx, gw, username, credential)
}

// DeleteConsumer removes a consumer from the gateway
func (s *GatewayService) DeleteConsumer(ctx context.Context, gatewayID, username string) error {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return err
	}
	return op.DeleteConsumer(ctx, gw, username)
}

// ConsumerExists reports whether a consumer exists on the gateway
func (s *GatewayService) ConsumerExists(ctx context.Context, gatewayID, username string) (bool, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return false, err
	}
	return op.ConsumerExists(ctx, gw, username)
}

// AuthorizeConsumer grants a consumer access to a gateway resource and
// returns the record needed for revocation
func (s *GatewayService) AuthorizeConsumer(ctx context.Context, gatewayID, consumerID string, ref gateway.RefConfig) (*gateway.AuthConfig, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.AuthorizeConsumer(ctx, gw, consumerID, ref)
}

// RevokeConsumerAuthorization reverses a previous grant
func (s *GatewayService) RevokeConsumerAuthorization(ctx context.Context, gatewayID, consumerID string, auth *gateway.AuthConfig) error {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return err
	}
	return op.RevokeConsumerAuthorization(ctx, gw, consumerID, auth)
}

// FetchGatewayIPs checks admin API connectivity for a gateway
func (s *GatewayService) FetchGatewayIPs(ctx context.Context, gatewayID string) ([]string, error) {
	gw, op, err := s.resolveOperator(gatewayID)
	if err != nil {
		return nil, err
	}
	return op.FetchGatewayIPs(ctx, gw), nil
}

func (s *GatewayService) resolve(gatewayID string) (*models.Gateway, error) {
	gw, err := s.gatewayRepo.GetByUUID(gatewayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gateway: %w", err)
	}
	if gw == nil {
		return nil, utils.ErrGatewayNotFound
	}
	return gw, nil
}

func (s *GatewayService) resolveOperator(gatewayID string) (*models.Gateway, gateway.Operator, error) {
	gw, err := s.resolve(gatewayID)
	if err != nil {
		return nil, nil, err
	}
	op, err := s.registry.Operator(gw.GatewayType)
	if err != nil {
		return nil, nil, err
	}
	return gw, op, nil
}
