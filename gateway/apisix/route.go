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

// Plugin keys with adapter-level meaning. mcp-bridge and ai-proxy are
// marker plugins: their presence alone decides the resource category.
const (
	pluginKeyAuth             = "key-auth"
	pluginConsumerRestriction = "consumer-restriction"
	pluginMcpBridge           = "mcp-bridge"
	pluginAiProxy             = "ai-proxy"

	restrictionTypeConsumerName = "consumer_name"
)

// Route is the APISIX Admin API route object. Plugin values are kept opaque
// except for the known kinds, which get typed views at the adapter boundary.
type Route struct {
	ID         string                 `json:"id,omitempty"`
	Name       string                 `json:"name,omitempty"`
	URI        string                 `json:"uri,omitempty"`
	URIs       []string               `json:"uris,omitempty"`
	Methods    []string               `json:"methods,omitempty"`
	Plugins    map[string]interface{} `json:"plugins,omitempty"`
	Upstream   map[string]interface{} `json:"upstream,omitempty"`
	Status     *bool                  `json:"status,omitempty"`
	Desc       string                 `json:"desc,omitempty"`
	CreateTime int64                  `json:"create_time,omitempty"`
	UpdateTime int64                  `json:"update_time,omitempty"`
}

// HasMcpBridgePlugin reports whether the MCP bridge marker plugin is present
func (r *Route) HasMcpBridgePlugin() bool {
	_, ok := r.Plugins[pluginMcpBridge]
	return ok
}

// HasAiProxyPlugin reports whether the AI proxy marker plugin is present
func (r *Route) HasAiProxyPlugin() bool {
	_, ok := r.Plugins[pluginAiProxy]
	return ok
}

// McpBridgeConfig returns the mcp-bridge plugin config, or nil
func (r *Route) McpBridgeConfig() map[string]interface{} {
	cfg, _ := r.Plugins[pluginMcpBridge].(map[string]interface{})
	return cfg
}

// AiProxyConfig returns the ai-proxy plugin config, or nil
func (r *Route) AiProxyConfig() map[string]interface{} {
	cfg, _ := r.Plugins[pluginAiProxy].(map[string]interface{})
	return cfg
}

// AiProxyProvider returns the provider configured on the ai-proxy plugin
func (r *Route) AiProxyProvider() string {
	cfg := r.AiProxyConfig()
	if cfg == nil {
		return ""
	}
	provider, _ := cfg["provider"].(string)
	return provider
}

// AiProxyModelName returns the model name from the ai-proxy plugin config.
// Two legacy shapes exist: a nested object with a "name" field, and a flat
// string directly under the "model" key.
func (r *Route) AiProxyModelName() string {
	cfg := r.AiProxyConfig()
	if cfg == nil {
		return ""
	}
	if modelCfg, ok := cfg["model"].(map[string]interface{}); ok {
		if name, ok := modelCfg["name"].(string); ok {
			return name
		}
		return ""
	}
	if name, ok := cfg["model"].(string); ok {
		return name
	}
	return ""
}

// IsEnabled reports the route's status flag; an absent flag means enabled
func (r *Route) IsEnabled() bool {
	return r.Status == nil || *r.Status
}

// Consumer is the APISIX Admin API consumer object
type Consumer struct {
	Username   string                 `json:"username,omitempty"`
	Plugins    map[string]interface{} `json:"plugins,omitempty"`
	Desc       string                 `json:"desc,omitempty"`
	Labels     map[string]string      `json:"labels,omitempty"`
	CreateTime int64                  `json:"create_time,omitempty"`
	UpdateTime int64                  `json:"update_time,omitempty"`
}

// newKeyAuthConsumer builds a consumer carrying a key-auth credential
func newKeyAuthConsumer(username, apiKey, desc string, labels map[string]string) *Consumer {
	return &Consumer{
		Username: username,
		Desc:     desc,
		Labels:   labels,
		Plugins: map[string]interface{}{
			pluginKeyAuth: map[string]interface{}{"key": apiKey},
		},
	}
}

// consumerRestriction is the typed view of the consumer-restriction plugin
// entry. Only the consumer_name whitelist shape is understood; anything else
// is left untouched by the authorization engine.
type consumerRestriction struct {
	Type      string
	Whitelist []string
}

// parseConsumerRestriction builds a typed view from a raw plugin value. The
// whitelist may arrive as a bare string or a list; it is normalized into a
// deduplicated ordered id list. Returns ok=false when the value is present
// but not an object.
func parseConsumerRestriction(raw interface{}) (*consumerRestriction, bool) {
	if raw == nil {
		return &consumerRestriction{Type: restrictionTypeConsumerName}, true
	}
	cfg, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false
	}

	rc := &consumerRestriction{Type: restrictionTypeConsumerName}

	seen := make(map[string]struct{})
	appendID := func(id string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		rc.Whitelist = append(rc.Whitelist, id)
	}

	switch wl := cfg["whitelist"].(type) {
	case []interface{}:
		for _, item := range wl {
			if s, ok := item.(string); ok {
				appendID(s)
			}
		}
	case []string:
		for _, s := range wl {
			appendID(s)
		}
	case string:
		appendID(wl)
	}

	return rc, true
}

// contains reports whether id is already whitelisted
func (c *consumerRestriction) contains(id string) bool {
	for _, existing := range c.Whitelist {
		if existing == id {
			return true
		}
	}
	return false
}

// remove deletes id from the whitelist, reporting whether it was a member
func (c *consumerRestriction) remove(id string) bool {
	for i, existing := range c.Whitelist {
		if existing == id {
			c.Whitelist = append(c.Whitelist[:i], c.Whitelist[i+1:]...)
			return true
		}
	}
	return false
}

// toMap converts the typed view back into its wire shape
func (c *consumerRestriction) toMap() map[string]interface{} {
	whitelist := make([]interface{}, 0, len(c.Whitelist))
	for _, id := range c.Whitelist {
		whitelist = append(whitelist, id)
	}
	return map[string]interface{}{
		"type":      c.Type,
		"whitelist": whitelist,
	}
}
