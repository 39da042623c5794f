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

// PageResult is a page of canonical results with 1-indexed page numbers.
// TotalCount always reflects the full filtered set, including when the
// requested page lies past the end and Content is empty.
type PageResult[T any] struct {
	Content    []T `json:"content"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalCount int `json:"totalCount"`
}

// PageOf slices items into the requested page. Pages before the first or
// past the end yield an empty page carrying the true total.
func PageOf[T any](items []T, page, size int) *PageResult[T] {
	total := len(items)
	from := (page - 1) * size
	if from < 0 || from >= total {
		return &PageResult[T]{Content: []T{}, Page: page, Size: size, TotalCount: total}
	}
	to := from + size
	if to > total {
		to = total
	}
	return &PageResult[T]{Content: items[from:to], Page: page, Size: size, TotalCount: total}
}

// HTTPAPIResult is the canonical view of a plain HTTP API route
type HTTPAPIResult struct {
	APIID   string   `json:"apiId"`
	APIName string   `json:"apiName"`
	RouteID string   `json:"routeId"`
	URI     string   `json:"uri"`
	Methods []string `json:"methods,omitempty"`
	Enabled bool     `json:"enabled"`
}

// MCPServerResult is the canonical view of an MCP server route
type MCPServerResult struct {
	MCPServerName string `json:"mcpServerName"`
	RouteID       string `json:"routeId"`
	URI           string `json:"uri"`
	TransportType string `json:"transportType,omitempty"`
	Command       string `json:"command,omitempty"`
	Args          string `json:"args,omitempty"`
	Enabled       bool   `json:"enabled"`
}

// ModelAPIResult is the canonical view of a model API route
type ModelAPIResult struct {
	ModelRouteName string `json:"modelRouteName"`
	RouteID        string `json:"routeId"`
	URI            string `json:"uri"`
	Provider       string `json:"provider,omitempty"`
	ModelName      string `json:"modelName,omitempty"`
	Enabled        bool   `json:"enabled"`
}

// RefConfig references a gateway resource by its vendor route id
type RefConfig struct {
	RouteID        string `json:"routeId"`
	MCPServerName  string `json:"mcpServerName,omitempty"`
	ModelRouteName string `json:"modelRouteName,omitempty"`
}

// AuthConfig is the record returned by AuthorizeConsumer and required by
// RevokeConsumerAuthorization to reverse the grant. The route id alone is
// sufficient: reversal only removes a known consumer from the whitelist.
type AuthConfig struct {
	RouteID string `json:"routeId"`
}

// ConsumerSpec describes the consumer pushed to a vendor gateway
type ConsumerSpec struct {
	Username    string            `json:"username"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DomainResult is one reachable address in an exported config document.
// The domain is a placeholder token until a caller substitutes the real
// gateway address.
type DomainResult struct {
	Domain   string `json:"domain"`
	Protocol string `json:"protocol"`
}

// RouteMatchPath describes how an exported route path is matched
type RouteMatchPath struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// RouteMatchResult is the match block of an exported route
type RouteMatchResult struct {
	Methods []string       `json:"methods"`
	Path    RouteMatchPath `json:"path"`
}

// HTTPRouteResult is one exported route entry in a config document
type HTTPRouteResult struct {
	Domains     []DomainResult   `json:"domains"`
	Match       RouteMatchResult `json:"match"`
	Description string           `json:"description,omitempty"`
}

// APIConfig is the exported configuration document for an HTTP API
type APIConfig struct {
	APIID   string            `json:"apiId"`
	APIName string            `json:"apiName"`
	URI     string            `json:"uri"`
	Methods []string          `json:"methods,omitempty"`
	Enabled bool              `json:"enabled"`
	Routes  []HTTPRouteResult `json:"routes"`
}

// MCPServerConfig is the server block of an exported MCP config
type MCPServerConfig struct {
	Path    string         `json:"path"`
	Domains []DomainResult `json:"domains"`
}

// MCPMetadata describes the provenance of an exported MCP config
type MCPMetadata struct {
	Source         string `json:"source"`
	CreateFromType string `json:"createFromType"`
	Protocol       string `json:"protocol"`
}

// MCPConfig is the exported configuration document for an MCP server
type MCPConfig struct {
	MCPServerName   string          `json:"mcpServerName"`
	MCPServerConfig MCPServerConfig `json:"mcpServerConfig"`
	Tools           string          `json:"tools,omitempty"`
	Meta            MCPMetadata     `json:"meta"`
}

// ModelAPIConfig is the API block of an exported model config
type ModelAPIConfig struct {
	AIProtocols   []string          `json:"aiProtocols"`
	ModelCategory string            `json:"modelCategory"`
	Routes        []HTTPRouteResult `json:"routes"`
}

// ModelConfig is the exported configuration document for a model API
type ModelConfig struct {
	ModelAPIConfig ModelAPIConfig `json:"modelAPIConfig"`
}
