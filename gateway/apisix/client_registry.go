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
	"log/slog"
	"sync"

	"github.com/apiopenplatform/portal-gateway-service/models"
)

// ClientRegistry caches one Client per distinct admin connection
// fingerprint. A gateway record whose connection settings change gets a new
// fingerprint; stale entries are dropped through Invalidate.
type ClientRegistry struct {
	mu                   sync.Mutex
	clients              map[string]*Client
	defaultTimeoutMillis int64
	logger               *slog.Logger
}

// NewClientRegistry creates an empty client registry
func NewClientRegistry(defaultTimeoutMillis int64, logger *slog.Logger) *ClientRegistry {
	return &ClientRegistry{
		clients:              make(map[string]*Client),
		defaultTimeoutMillis: defaultTimeoutMillis,
		logger:               logger,
	}
}

// For returns the client for the gateway's connection, creating it on first
// use. Concurrent first access to the same fingerprint yields one client.
func (r *ClientRegistry) For(gw *models.Gateway) *Client {
	fingerprint := gw.Fingerprint()

	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[fingerprint]; ok {
		return client
	}

	client := NewClient(gw.AdminEndpoint, gw.AdminAPIKey, gw.Timeout(r.defaultTimeoutMillis), r.logger)
	r.clients[fingerprint] = client
	return client
}

// Invalidate drops the cached client for a fingerprint. Callers invoke it
// when a gateway's connection settings change or the record is deleted.
func (r *ClientRegistry) Invalidate(fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, fingerprint)
}
