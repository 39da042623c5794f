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

package gateway

import (
	"context"

	"github.com/apiopenplatform/portal-gateway-service/models"
)

// Operator is the common contract every vendor gateway implementation
// fulfils. One implementation exists per vendor product; the active one for
// a request is selected through the Registry by the gateway record's type.
//
// Operations a vendor cannot offer return utils.ErrUnsupportedOperation.
type Operator interface {
	// GatewayType returns the vendor tag this operator serves
	GatewayType() models.GatewayType

	// ========================================================================
	// Resource listing
	// ========================================================================

	// FetchHTTPAPIs lists routes without a marker plugin as HTTP APIs
	FetchHTTPAPIs(ctx context.Context, gw *models.Gateway, page, size int) (*PageResult[HTTPAPIResult], error)

	// FetchMCPServers lists routes carrying the MCP bridge marker plugin
	FetchMCPServers(ctx context.Context, gw *models.Gateway, page, size int) (*PageResult[MCPServerResult], error)

	// FetchModelAPIs lists routes carrying the AI proxy marker plugin
	FetchModelAPIs(ctx context.Context, gw *models.Gateway, page, size int) (*PageResult[ModelAPIResult], error)

	// ========================================================================
	// Exported configuration
	// ========================================================================

	// FetchAPIConfig builds the exported config for an HTTP API route.
	// Fails with utils.ErrRouteNotFound when the reference is unknown.
	FetchAPIConfig(ctx context.Context, gw *models.Gateway, ref RefConfig) (*APIConfig, error)

	// FetchMCPConfig builds the exported config for an MCP server route
	FetchMCPConfig(ctx context.Context, gw *models.Gateway, ref RefConfig) (*MCPConfig, error)

	// FetchModelConfig builds the exported config for a model API route
	FetchModelConfig(ctx context.Context, gw *models.Gateway, ref RefConfig) (*ModelConfig, error)

	// ========================================================================
	// Consumer lifecycle
	// ========================================================================

	// CreateConsumer pushes a consumer with its API key credential to the
	// gateway and returns the vendor-side consumer id
	CreateConsumer(ctx context.Context, gw *models.Gateway, spec ConsumerSpec, credential *models.ConsumerCredential) (string, error)

	// UpdateConsumer replaces the consumer's credential configuration
	UpdateConsumer(ctx context.Context, gw *models.Gateway, username string, credential *models.ConsumerCredential) error

	// DeleteConsumer removes a consumer from the gateway
	DeleteConsumer(ctx context.Context, gw *models.Gateway, username string) error

	// ConsumerExists reports whether a consumer exists. It never fails for
	// "absent"; every other error class propagates.
	ConsumerExists(ctx context.Context, gw *models.Gateway, username string) (bool, error)

	// ========================================================================
	// Subscription authorization
	// ========================================================================

	// AuthorizeConsumer grants consumerID access to the referenced route and
	// returns the record needed to reverse the grant. Idempotent.
	AuthorizeConsumer(ctx context.Context, gw *models.Gateway, consumerID string, ref RefConfig) (*AuthConfig, error)

	// RevokeConsumerAuthorization removes consumerID from the referenced
	// route's whitelist. Safe on already-revoked or already-gone state.
	RevokeConsumerAuthorization(ctx context.Context, gw *models.Gateway, consumerID string, auth *AuthConfig) error

	// ========================================================================
	// Connectivity
	// ========================================================================

	// FetchGatewayIPs verifies admin API connectivity and returns the
	// reachable gateway hosts, best effort
	FetchGatewayIPs(ctx context.Context, gw *models.Gateway) []string
}
