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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

func whitelistOf(t *testing.T, route *Route) []string {
	t.Helper()
	raw, ok := route.Plugins[pluginConsumerRestriction]
	require.True(t, ok, "consumer-restriction plugin missing")
	restriction, ok := parseConsumerRestriction(raw)
	require.True(t, ok)
	return restriction.Whitelist
}

func TestAuthorizeConsumerOnMcpRoute(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{
		ID:  "route-1",
		URI: "/mcp/filesystem/*",
		Plugins: map[string]interface{}{
			pluginMcpBridge: map[string]interface{}{"command": "/bin/echo"},
		},
	})

	op := newTestOperator()
	auth, err := op.AuthorizeConsumer(context.Background(), fa.testGateway(), "consumer-1", gateway.RefConfig{RouteID: "route-1"})
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, "route-1", auth.RouteID)

	stored := fa.route("route-1")
	require.NotNil(t, stored)

	_, hasKeyAuth := stored.Plugins[pluginKeyAuth]
	assert.True(t, hasKeyAuth)
	assert.Equal(t, []string{"consumer-1"}, whitelistOf(t, stored))

	bridge, ok := stored.Plugins[pluginMcpBridge].(map[string]interface{})
	require.True(t, ok, "mcp-bridge plugin must survive authorization")
	assert.Equal(t, "/bin/echo", bridge["command"])
}

func TestAuthorizeConsumerIdempotent(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{ID: "route-1", URI: "/orders/*"})

	op := newTestOperator()
	gw := fa.testGateway()
	ctx := context.Background()

	_, err := op.AuthorizeConsumer(ctx, gw, "consumer-1", gateway.RefConfig{RouteID: "route-1"})
	require.NoError(t, err)
	first := *fa.route("route-1")

	_, err = op.AuthorizeConsumer(ctx, gw, "consumer-1", gateway.RefConfig{RouteID: "route-1"})
	require.NoError(t, err)
	second := *fa.route("route-1")

	assert.Equal(t, first.Plugins, second.Plugins)
	assert.Equal(t, []string{"consumer-1"}, whitelistOf(t, &second))
}

func TestAuthorizeConsumerPreservesKeyAuthConfig(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{
		ID:  "route-1",
		URI: "/orders/*",
		Plugins: map[string]interface{}{
			pluginKeyAuth: map[string]interface{}{"header": "apikey"},
		},
	})

	op := newTestOperator()
	_, err := op.AuthorizeConsumer(context.Background(), fa.testGateway(), "consumer-1", gateway.RefConfig{RouteID: "route-1"})
	require.NoError(t, err)

	keyAuth, ok := fa.route("route-1").Plugins[pluginKeyAuth].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "apikey", keyAuth["header"])
}

func TestAuthorizeConsumerNormalizesStringWhitelist(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{
		ID:  "route-1",
		URI: "/orders/*",
		Plugins: map[string]interface{}{
			pluginConsumerRestriction: map[string]interface{}{
				"type":      restrictionTypeConsumerName,
				"whitelist": "consumer-0",
			},
		},
	})

	op := newTestOperator()
	_, err := op.AuthorizeConsumer(context.Background(), fa.testGateway(), "consumer-1", gateway.RefConfig{RouteID: "route-1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"consumer-0", "consumer-1"}, whitelistOf(t, fa.route("route-1")))
}

func TestAuthorizeConsumerValidation(t *testing.T) {
	fa := newFakeAdmin(t)
	op := newTestOperator()
	ctx := context.Background()

	_, err := op.AuthorizeConsumer(ctx, fa.testGateway(), "consumer-1", gateway.RefConfig{})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = op.AuthorizeConsumer(ctx, fa.testGateway(), "consumer-1", gateway.RefConfig{RouteID: "missing"})
	assert.ErrorIs(t, err, utils.ErrRouteNotFound)
}

func TestAuthorizeConsumerRejectsMalformedRestriction(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{
		ID:  "route-1",
		URI: "/orders/*",
		Plugins: map[string]interface{}{
			pluginConsumerRestriction: "garbage",
		},
	})

	op := newTestOperator()
	_, err := op.AuthorizeConsumer(context.Background(), fa.testGateway(), "consumer-1", gateway.RefConfig{RouteID: "route-1"})
	assert.ErrorIs(t, err, utils.ErrInvalidGatewayConfig)
}

func TestRevokeConsumerAuthorization(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{
		ID:  "route-1",
		URI: "/mcp/filesystem/*",
		Plugins: map[string]interface{}{
			pluginMcpBridge: map[string]interface{}{"command": "/bin/echo"},
		},
	})

	op := newTestOperator()
	gw := fa.testGateway()
	ctx := context.Background()
	ref := gateway.RefConfig{RouteID: "route-1"}

	auth1, err := op.AuthorizeConsumer(ctx, gw, "consumer-1", ref)
	require.NoError(t, err)
	auth2, err := op.AuthorizeConsumer(ctx, gw, "consumer-2", ref)
	require.NoError(t, err)

	require.NoError(t, op.RevokeConsumerAuthorization(ctx, gw, "consumer-1", auth1))
	assert.Equal(t, []string{"consumer-2"}, whitelistOf(t, fa.route("route-1")))

	require.NoError(t, op.RevokeConsumerAuthorization(ctx, gw, "consumer-2", auth2))

	stored := fa.route("route-1")
	_, hasRestriction := stored.Plugins[pluginConsumerRestriction]
	assert.False(t, hasRestriction, "empty whitelist must drop the plugin entry")

	_, hasKeyAuth := stored.Plugins[pluginKeyAuth]
	assert.True(t, hasKeyAuth)
	_, hasBridge := stored.Plugins[pluginMcpBridge]
	assert.True(t, hasBridge)
}

func TestRevokeConsumerAuthorizationNoOps(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{ID: "route-1", URI: "/orders/*"})

	op := newTestOperator()
	gw := fa.testGateway()
	ctx := context.Background()

	before := fa.updateCount()

	// nil record, route gone, plugin absent, consumer not a member: all
	// succeed without touching the gateway
	require.NoError(t, op.RevokeConsumerAuthorization(ctx, gw, "consumer-1", nil))
	require.NoError(t, op.RevokeConsumerAuthorization(ctx, gw, "consumer-1", &gateway.AuthConfig{}))
	require.NoError(t, op.RevokeConsumerAuthorization(ctx, gw, "consumer-1", &gateway.AuthConfig{RouteID: "gone"}))
	require.NoError(t, op.RevokeConsumerAuthorization(ctx, gw, "consumer-1", &gateway.AuthConfig{RouteID: "route-1"}))

	assert.Equal(t, before, fa.updateCount(), "no-op revokes must not issue updates")
}

func TestRevokeToleratesRouteDeletedMidFlight(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{
		ID:  "route-1",
		URI: "/orders/*",
		Plugins: map[string]interface{}{
			pluginKeyAuth: map[string]interface{}{},
			pluginConsumerRestriction: map[string]interface{}{
				"type":      restrictionTypeConsumerName,
				"whitelist": []interface{}{"consumer-1"},
			},
		},
	})
	fa.rejectRouteWrites = true

	op := newTestOperator()
	err := op.RevokeConsumerAuthorization(context.Background(), fa.testGateway(), "consumer-1", &gateway.AuthConfig{RouteID: "route-1"})
	assert.NoError(t, err)
}

func TestConcurrentAuthorizeSameRoute(t *testing.T) {
	fa := newFakeAdmin(t)
	fa.setRoute(&Route{ID: "route-1", URI: "/orders/*"})

	op := newTestOperator()
	gw := fa.testGateway()
	ctx := context.Background()

	consumers := []string{"c1", "c2", "c3", "c4", "c5"}
	var wg sync.WaitGroup
	for _, consumer := range consumers {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := op.AuthorizeConsumer(ctx, gw, id, gateway.RefConfig{RouteID: "route-1"})
			assert.NoError(t, err)
		}(consumer)
	}
	wg.Wait()

	assert.ElementsMatch(t, consumers, whitelistOf(t, fa.route("route-1")))
}
