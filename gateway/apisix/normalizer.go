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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
)

// mcp-bridge auto-detects the transport; the adapter reports the value it
// effectively uses
const mcpTransportType = "stdio"

// normalizeRoutePath turns a wildcard-matched route path into a stable
// prefix literal: a trailing "/*" or bare "*" is stripped, then a single
// trailing "/" unless the remaining path is just "/".
func normalizeRoutePath(uri string) string {
	path := strings.TrimSpace(uri)
	if strings.HasSuffix(path, "/*") {
		path = path[:len(path)-2]
	} else if strings.HasSuffix(path, "*") {
		path = path[:len(path)-1]
	}
	if strings.HasSuffix(path, "/") && len(path) > 1 {
		path = path[:len(path)-1]
	}
	return path
}

// displayName is the route name with the route id as fallback
func displayName(route *Route) string {
	if route.Name != "" {
		return route.Name
	}
	return route.ID
}

// mcpServerNameFrom extracts the MCP server name from a route URI such as
// /mcp/filesystem/* -> filesystem, falling back to the route id
func mcpServerNameFrom(route *Route) string {
	if strings.Contains(route.URI, "/mcp/") {
		parts := strings.Split(route.URI, "/")
		if len(parts) >= 3 && parts[2] != "" {
			return parts[2]
		}
	}
	return route.ID
}

// stringifyArgs renders the mcp-bridge args value for the canonical result
func stringifyArgs(args interface{}) string {
	if args == nil {
		return ""
	}
	encoded, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(encoded)
}

// toHTTPAPIResult maps a plain route to its canonical HTTP API view
func toHTTPAPIResult(route *Route) gateway.HTTPAPIResult {
	return gateway.HTTPAPIResult{
		APIID:   route.ID,
		APIName: displayName(route),
		RouteID: route.ID,
		URI:     route.URI,
		Methods: route.Methods,
		Enabled: route.IsEnabled(),
	}
}

// toMCPServerResult maps an mcp-bridge route to its canonical MCP view
func toMCPServerResult(route *Route) gateway.MCPServerResult {
	result := gateway.MCPServerResult{
		MCPServerName: mcpServerNameFrom(route),
		RouteID:       route.ID,
		URI:           route.URI,
		Enabled:       route.IsEnabled(),
	}

	if cfg := route.McpBridgeConfig(); cfg != nil {
		command, _ := cfg["command"].(string)
		result.Command = command
		result.Args = stringifyArgs(cfg["args"])
		result.TransportType = mcpTransportType
	}

	return result
}

// toModelAPIResult maps an ai-proxy route to its canonical model API view
func toModelAPIResult(route *Route) gateway.ModelAPIResult {
	return gateway.ModelAPIResult{
		ModelRouteName: displayName(route),
		RouteID:        route.ID,
		URI:            route.URI,
		Provider:       route.AiProxyProvider(),
		ModelName:      route.AiProxyModelName(),
		Enabled:        route.IsEnabled(),
	}
}
