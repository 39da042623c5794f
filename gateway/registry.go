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
	"fmt"
	"log/slog"
	"sync"

	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// Registry holds one Operator per vendor gateway type. Operators are
// registered during wiring; lookups afterwards are read-only.
type Registry struct {
	mu        sync.RWMutex
	operators map[models.GatewayType]Operator
	logger    *slog.Logger
}

// NewRegistry creates an empty operator registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		operators: make(map[models.GatewayType]Operator),
		logger:    logger,
	}
}

// Register adds an operator, replacing any previous registration for the
// same vendor type
func (r *Registry) Register(op Operator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operators[op.GatewayType()] = op
	r.logger.Info("gateway operator registered", "gatewayType", op.GatewayType())
}

// Operator returns the operator for the given vendor type
func (r *Registry) Operator(t models.GatewayType) (Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operators[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", utils.ErrInvalidGatewayType, t)
	}
	return op, nil
}
