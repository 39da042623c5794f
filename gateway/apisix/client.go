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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

const adminAPIPrefix = "/apisix/admin"

// errAdminNotFound marks a 404 from the admin API before the caller maps it
// to the missing resource kind
var errAdminNotFound = errors.New("admin API resource not found")

// Client talks to one APISIX Admin API instance. It is safe for concurrent
// use; the connection settings it was built from never change.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given admin endpoint
func NewClient(endpoint, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(endpoint, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// listResponse is the admin API list envelope. Each node's identifier may
// live only in the outer key.
type listResponse struct {
	List struct {
		Nodes []listNode `json:"nodes"`
	} `json:"list"`
}

type listNode struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// itemResponse is the admin API single-item envelope
type itemResponse struct {
	Value json.RawMessage `json:"value"`
}

// ListRoutes returns all routes known to the gateway
func (c *Client) ListRoutes(ctx context.Context) ([]Route, error) {
	var envelope listResponse
	if err := c.do(ctx, http.MethodGet, "/routes", nil, &envelope); err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(envelope.List.Nodes))
	for _, node := range envelope.List.Nodes {
		var route Route
		if err := json.Unmarshal(node.Value, &route); err != nil {
			return nil, fmt.Errorf("failed to decode route entry: %w", err)
		}
		if route.ID == "" {
			route.ID = extractIDFromKey(node.Key)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// GetRoute returns the route with the given id. A missing route fails with
// utils.ErrRouteNotFound; call sites decide whether that is a soft miss.
func (c *Client) GetRoute(ctx context.Context, routeID string) (*Route, error) {
	var envelope itemResponse
	err := c.do(ctx, http.MethodGet, "/routes/"+routeID, nil, &envelope)
	if err != nil {
		if errors.Is(err, errAdminNotFound) {
			return nil, fmt.Errorf("%w: %s", utils.ErrRouteNotFound, routeID)
		}
		return nil, err
	}

	var route Route
	if err := json.Unmarshal(envelope.Value, &route); err != nil {
		return nil, fmt.Errorf("failed to decode route: %w", err)
	}
	route.ID = routeID
	return &route, nil
}

// CreateRoute creates a route under the given id. The admin API uses PUT
// with full-replace semantics for both create and update.
func (c *Client) CreateRoute(ctx context.Context, routeID string, route *Route) error {
	err := c.do(ctx, http.MethodPut, "/routes/"+routeID, route, nil)
	if errors.Is(err, errAdminNotFound) {
		return fmt.Errorf("%w: %s", utils.ErrRouteNotFound, routeID)
	}
	return err
}

// UpdateRoute replaces the route configuration under the given id
func (c *Client) UpdateRoute(ctx context.Context, routeID string, route *Route) error {
	err := c.do(ctx, http.MethodPut, "/routes/"+routeID, route, nil)
	if errors.Is(err, errAdminNotFound) {
		return fmt.Errorf("%w: %s", utils.ErrRouteNotFound, routeID)
	}
	return err
}

// DeleteRoute removes the route with the given id
func (c *Client) DeleteRoute(ctx context.Context, routeID string) error {
	err := c.do(ctx, http.MethodDelete, "/routes/"+routeID, nil, nil)
	if errors.Is(err, errAdminNotFound) {
		return fmt.Errorf("%w: %s", utils.ErrRouteNotFound, routeID)
	}
	return err
}

// ListConsumers returns all consumers known to the gateway
func (c *Client) ListConsumers(ctx context.Context) ([]Consumer, error) {
	var envelope listResponse
	if err := c.do(ctx, http.MethodGet, "/consumers", nil, &envelope); err != nil {
		return nil, err
	}

	consumers := make([]Consumer, 0, len(envelope.List.Nodes))
	for _, node := range envelope.List.Nodes {
		var consumer Consumer
		if err := json.Unmarshal(node.Value, &consumer); err != nil {
			return nil, fmt.Errorf("failed to decode consumer entry: %w", err)
		}
		if consumer.Username == "" {
			consumer.Username = extractIDFromKey(node.Key)
		}
		consumers = append(consumers, consumer)
	}
	return consumers, nil
}

// GetConsumer returns the consumer with the given username. A missing
// consumer fails with utils.ErrConsumerNotFound.
func (c *Client) GetConsumer(ctx context.Context, username string) (*Consumer, error) {
	var envelope itemResponse
	err := c.do(ctx, http.MethodGet, "/consumers/"+username, nil, &envelope)
	if err != nil {
		if errors.Is(err, errAdminNotFound) {
			return nil, fmt.Errorf("%w: %s", utils.ErrConsumerNotFound, username)
		}
		return nil, err
	}

	var consumer Consumer
	if err := json.Unmarshal(envelope.Value, &consumer); err != nil {
		return nil, fmt.Errorf("failed to decode consumer: %w", err)
	}
	consumer.Username = username
	return &consumer, nil
}

// CreateConsumer creates a consumer under the given username
func (c *Client) CreateConsumer(ctx context.Context, username string, consumer *Consumer) error {
	err := c.do(ctx, http.MethodPut, "/consumers/"+username, consumer, nil)
	if errors.Is(err, errAdminNotFound) {
		return fmt.Errorf("%w: %s", utils.ErrConsumerNotFound, username)
	}
	return err
}

// UpdateConsumer replaces the consumer configuration under the given username
func (c *Client) UpdateConsumer(ctx context.Context, username string, consumer *Consumer) error {
	err := c.do(ctx, http.MethodPut, "/consumers/"+username, consumer, nil)
	if errors.Is(err, errAdminNotFound) {
		return fmt.Errorf("%w: %s", utils.ErrConsumerNotFound, username)
	}
	return err
}

// DeleteConsumer removes the consumer with the given username
func (c *Client) DeleteConsumer(ctx context.Context, username string) error {
	err := c.do(ctx, http.MethodDelete, "/consumers/"+username, nil, nil)
	if errors.Is(err, errAdminNotFound) {
		return fmt.Errorf("%w: %s", utils.ErrConsumerNotFound, username)
	}
	return err
}

// do executes one admin API call. 404 maps to errAdminNotFound, any other
// non-2xx becomes a gateway.RemoteError carrying the original status, and
// network failures propagate wrapped. Nothing is retried here.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := c.baseURL + adminAPIPrefix + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("admin API request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("admin API request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return errAdminNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &gateway.RemoteError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// extractIDFromKey derives a resource id from a list-entry key such as
// /apisix/routes/route-1
func extractIDFromKey(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "/")
	return parts[len(parts)-1]
}
