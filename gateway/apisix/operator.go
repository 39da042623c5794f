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

package apisix

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// gatewayDomainPlaceholder stands in for a reachable gateway address in
// exported config documents. A caller outside this layer substitutes it once
// real network addresses are known.
const gatewayDomainPlaceholder = "<apisix-gateway-ip>"

var schemePrefix = regexp.MustCompile(`^https?://`)

// Operator implements the gateway.Operator contract against the APISIX
// Admin API
type Operator struct {
	clients *ClientRegistry
	locks   *routeLocks
	logger  *slog.Logger
}

// NewOperator creates the APISIX operator
func NewOperator(defaultTimeoutMillis int64, logger *slog.Logger) *Operator {
	return &Operator{
		clients: NewClientRegistry(defaultTimeoutMillis, logger),
		locks:   newRouteLocks(),
		logger:  logger,
	}
}

// GatewayType returns the vendor tag this operator serves
func (o *Operator) GatewayType() models.GatewayType {
	return models.GatewayTypeApisix
}

// Clients exposes the client registry for lifecycle hooks (invalidation on
// connection-config change)
func (o *Operator) Clients() *ClientRegistry {
	return o.clients
}

// FetchHTTPAPIs lists routes without a marker plugin as HTTP APIs
func (o *Operator) FetchHTTPAPIs(ctx context.Context, gw *models.Gateway, page, size int) (*gateway.PageResult[gateway.HTTPAPIResult], error) {
	routes, err := o.clients.For(gw).ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]gateway.HTTPAPIResult, 0, len(routes))
	for i := range routes {
		route := &routes[i]
		if route.HasMcpBridgePlugin() || route.HasAiProxyPlugin() {
			continue
		}
		results = append(results, toHTTPAPIResult(route))
	}

	return gateway.PageOf(results, page, size), nil
}

// FetchMCPServers lists routes carrying the mcp-bridge marker plugin
func (o *Operator) FetchMCPServers(ctx context.Context, gw *models.Gateway, page, size int) (*gateway.PageResult[gateway.MCPServerResult], error) {
	routes, err := o.clients.For(gw).ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]gateway.MCPServerResult, 0, len(routes))
	for i := range routes {
		route := &routes[i]
		if !route.HasMcpBridgePlugin() {
			continue
		}
		results = append(results, toMCPServerResult(route))
	}

	return gateway.PageOf(results, page, size), nil
}

// FetchModelAPIs lists routes carrying the ai-proxy marker plugin
func (o *Operator) FetchModelAPIs(ctx context.Context, gw *models.Gateway, page, size int) (*gateway.PageResult[gateway.ModelAPIResult], error) {
	routes, err := o.clients.For(gw).ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]gateway.ModelAPIResult, 0, len(routes))
	for i := range routes {
		route := &routes[i]
		if !route.HasAiProxyPlugin() {
			continue
		}
		results = append(results, toModelAPIResult(route))
	}

	return gateway.PageOf(results, page, size), nil
}

// FetchAPIConfig builds the exported config for an HTTP API route
func (o *Operator) FetchAPIConfig(ctx context.Context, gw *models.Gateway, ref gateway.RefConfig) (*gateway.APIConfig, error) {
	route, err := o.clients.For(gw).GetRoute(ctx, ref.RouteID)
	if err != nil {
		return nil, err
	}

	normalizedPath := normalizeRoutePath(route.URI)

	return &gateway.APIConfig{
		APIID:   route.ID,
		APIName: displayName(route),
		URI:     normalizedPath,
		Methods: route.Methods,
		Enabled: route.IsEnabled(),
		Routes:  []gateway.HTTPRouteResult{exportedRoute(route, normalizedPath, "GET")},
	}, nil
}

// FetchMCPConfig builds the exported config for an MCP server route
func (o *Operator) FetchMCPConfig(ctx context.Context, gw *models.Gateway, ref gateway.RefConfig) (*gateway.MCPConfig, error) {
	route, err := o.clients.For(gw).GetRoute(ctx, ref.RouteID)
	if err != nil {
		return nil, err
	}

	result := &gateway.MCPConfig{
		MCPServerName: ref.MCPServerName,
		MCPServerConfig: gateway.MCPServerConfig{
			Path:    normalizeRoutePath(route.URI),
			Domains: placeholderDomains(),
		},
		Meta: gateway.MCPMetadata{
			Source:         string(models.GatewayTypeApisix),
			CreateFromType: "MCP_BRIDGE",
			Protocol:       "SSE",
		},
	}

	if cfg := route.McpBridgeConfig(); cfg != nil {
		tools, err := json.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode mcp-bridge config: %w", err)
		}
		result.Tools = string(tools)
	}

	return result, nil
}

// FetchModelConfig builds the exported config for a model API route
func (o *Operator) FetchModelConfig(ctx context.Context, gw *models.Gateway, ref gateway.RefConfig) (*gateway.ModelConfig, error) {
	route, err := o.clients.For(gw).GetRoute(ctx, ref.RouteID)
	if err != nil {
		return nil, err
	}

	normalizedPath := normalizeRoutePath(route.URI)

	return &gateway.ModelConfig{
		ModelAPIConfig: gateway.ModelAPIConfig{
			AIProtocols:   []string{"OpenAI/V1"},
			ModelCategory: "Text",
			Routes:        []gateway.HTTPRouteResult{exportedRoute(route, normalizedPath, "POST")},
		},
	}, nil
}

// CreateConsumer pushes a consumer with its API key credential to the
// gateway. At least one API key credential is required; the first is used.
func (o *Operator) CreateConsumer(ctx context.Context, gw *models.Gateway, spec gateway.ConsumerSpec, credential *models.ConsumerCredential) (string, error) {
	consumer, err := buildConsumer(spec.Username, spec.Description, spec.Labels, credential)
	if err != nil {
		return "", err
	}
	if err := o.clients.For(gw).CreateConsumer(ctx, spec.Username, consumer); err != nil {
		return "", err
	}
	return spec.Username, nil
}

// UpdateConsumer replaces the consumer's credential configuration
func (o *Operator) UpdateConsumer(ctx context.Context, gw *models.Gateway, username string, credential *models.ConsumerCredential) error {
	consumer, err := buildConsumer(username, "", nil, credential)
	if err != nil {
		return err
	}
	return o.clients.For(gw).UpdateConsumer(ctx, username, consumer)
}

// DeleteConsumer removes a consumer from the gateway
func (o *Operator) DeleteConsumer(ctx context.Context, gw *models.Gateway, username string) error {
	return o.clients.For(gw).DeleteConsumer(ctx, username)
}

// ConsumerExists reports whether a consumer exists on the gateway. Only a
// not-found response maps to false; any other failure propagates.
func (o *Operator) ConsumerExists(ctx context.Context, gw *models.Gateway, username string) (bool, error) {
	_, err := o.clients.For(gw).GetConsumer(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FetchGatewayIPs verifies admin API connectivity by listing routes and
// returns the admin endpoint host, best effort
func (o *Operator) FetchGatewayIPs(ctx context.Context, gw *models.Gateway) []string {
	routes, err := o.clients.For(gw).ListRoutes(ctx)
	if err != nil {
		o.logger.Warn("APISIX health check failed", "gateway", gw.Name, "error", err)
		return nil
	}
	o.logger.Info("APISIX health check passed", "gateway", gw.Name, "routes", len(routes))

	host := schemePrefix.ReplaceAllString(gw.AdminEndpoint, "")
	host = strings.SplitN(host, ":", 2)[0]
	if host == "" {
		return nil
	}
	return []string{host}
}

// buildConsumer derives the vendor consumer object from a canonical spec
// and credential set
func buildConsumer(username, desc string, labels map[string]string, credential *models.ConsumerCredential) (*Consumer, error) {
	apiKey := credential.FirstAPIKey()
	if apiKey == "" {
		return nil, utils.ErrAPIKeyRequired
	}
	return newKeyAuthConsumer(username, apiKey, desc, labels), nil
}

// exportedRoute builds the exported match descriptor for a route. The
// method default differs by export kind and is overridden by the route's
// own methods.
func exportedRoute(route *Route, normalizedPath, defaultMethod string) gateway.HTTPRouteResult {
	methods := route.Methods
	if len(methods) == 0 {
		methods = []string{defaultMethod}
	}
	return gateway.HTTPRouteResult{
		Domains: placeholderDomains(),
		Match: gateway.RouteMatchResult{
			Methods: methods,
			Path: gateway.RouteMatchPath{
				Value: normalizedPath,
				Type:  "PREFIX",
			},
		},
		Description: route.Desc,
	}
}

func placeholderDomains() []gateway.DomainResult {
	return []gateway.DomainResult{{
		Domain:   gatewayDomainPlaceholder,
		Protocol: "http",
	}}
}

// isNotFound classifies the NotFound error family
func isNotFound(err error) bool {
	return errorsIsAny(err, utils.ErrRouteNotFound, utils.ErrConsumerNotFound, utils.ErrGatewayNotFound)
}
