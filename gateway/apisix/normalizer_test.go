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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoutePath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"/api/test/*", "/api/test"},
		{"/api/test*", "/api/test"},
		{"/api/test/", "/api/test"},
		{"/api/test", "/api/test"},
		{"/*", "/"},
		{"/", "/"},
		{" /api/test/* ", "/api/test"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizeRoutePath(tc.uri), "uri %q", tc.uri)
	}
}

func TestDisplayNameFallsBackToID(t *testing.T) {
	assert.Equal(t, "orders", displayName(&Route{ID: "route-1", Name: "orders"}))
	assert.Equal(t, "route-1", displayName(&Route{ID: "route-1"}))
}

func TestMcpServerNameFrom(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		want  string
	}{
		{"segment after mcp", Route{ID: "route-1", URI: "/mcp/filesystem/*"}, "filesystem"},
		{"no mcp segment", Route{ID: "route-2", URI: "/api/orders/*"}, "route-2"},
		{"empty segment", Route{ID: "route-3", URI: "//mcp/"}, "route-3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mcpServerNameFrom(&tc.route))
		})
	}
}

func TestRouteEnabledFlag(t *testing.T) {
	assert.True(t, (&Route{}).IsEnabled())
	assert.True(t, (&Route{Status: boolPtr(true)}).IsEnabled())
	assert.False(t, (&Route{Status: boolPtr(false)}).IsEnabled())
}

func TestAiProxyModelNameShapes(t *testing.T) {
	nested := &Route{Plugins: map[string]interface{}{
		pluginAiProxy: map[string]interface{}{
			"provider": "openai",
			"model":    map[string]interface{}{"name": "gpt-4o"},
		},
	}}
	assert.Equal(t, "gpt-4o", nested.AiProxyModelName())
	assert.Equal(t, "openai", nested.AiProxyProvider())

	flat := &Route{Plugins: map[string]interface{}{
		pluginAiProxy: map[string]interface{}{"model": "llama3"},
	}}
	assert.Equal(t, "llama3", flat.AiProxyModelName())

	none := &Route{Plugins: map[string]interface{}{pluginAiProxy: map[string]interface{}{}}}
	assert.Equal(t, "", none.AiProxyModelName())
}

func TestToMCPServerResult(t *testing.T) {
	route := &Route{
		ID:  "route-1",
		URI: "/mcp/filesystem/*",
		Plugins: map[string]interface{}{
			pluginMcpBridge: map[string]interface{}{
				"command": "/usr/bin/mcp-fs",
				"args":    []interface{}{"--root", "/data"},
			},
		},
	}

	result := toMCPServerResult(route)
	assert.Equal(t, "filesystem", result.MCPServerName)
	assert.Equal(t, "route-1", result.RouteID)
	assert.Equal(t, "/usr/bin/mcp-fs", result.Command)
	assert.Equal(t, `["--root","/data"]`, result.Args)
	assert.Equal(t, mcpTransportType, result.TransportType)
	assert.True(t, result.Enabled)
}

func TestParseConsumerRestriction(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		rc, ok := parseConsumerRestriction(nil)
		require.True(t, ok)
		assert.Equal(t, restrictionTypeConsumerName, rc.Type)
		assert.Empty(t, rc.Whitelist)
	})

	t.Run("string whitelist", func(t *testing.T) {
		rc, ok := parseConsumerRestriction(map[string]interface{}{"whitelist": "consumer-1"})
		require.True(t, ok)
		assert.Equal(t, []string{"consumer-1"}, rc.Whitelist)
	})

	t.Run("list whitelist with duplicates", func(t *testing.T) {
		rc, ok := parseConsumerRestriction(map[string]interface{}{
			"whitelist": []interface{}{"consumer-1", "consumer-2", "consumer-1", ""},
		})
		require.True(t, ok)
		assert.Equal(t, []string{"consumer-1", "consumer-2"}, rc.Whitelist)
	})

	t.Run("unexpected shape", func(t *testing.T) {
		_, ok := parseConsumerRestriction("not-an-object")
		assert.False(t, ok)
	})
}

func TestConsumerRestrictionMembership(t *testing.T) {
	rc := &consumerRestriction{Type: restrictionTypeConsumerName, Whitelist: []string{"a", "b"}}

	assert.True(t, rc.contains("a"))
	assert.False(t, rc.contains("c"))

	assert.True(t, rc.remove("a"))
	assert.False(t, rc.remove("a"))
	assert.Equal(t, []string{"b"}, rc.Whitelist)

	wire := rc.toMap()
	assert.Equal(t, restrictionTypeConsumerName, wire["type"])
	assert.Equal(t, []interface{}{"b"}, wire["whitelist"])
}
