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
	"errors"
	"fmt"
	"sync"

	"github.com/apiopenplatform/portal-gateway-service/gateway"
	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// Subscription-level authorization mutates a route's plugin map in place:
// key-auth authenticates consumers, consumer-restriction whitelists the
// authorized ones. The whole state lives in the gateway configuration; every
// grant and revoke is a read-modify-write against that single source of
// truth. The admin API offers no revision token on PUT, so grant/revoke for
// the same route are serialized with a per-route mutex within this process.
// Cross-process updates can still race; that gap is documented, not solved.

// AuthorizeConsumer grants consumerID access to the referenced route.
// Idempotent: repeated calls converge to the same plugin state.
func (o *Operator) AuthorizeConsumer(ctx context.Context, gw *models.Gateway, consumerID string, ref gateway.RefConfig) (*gateway.AuthConfig, error) {
	routeID := ref.RouteID
	if routeID == "" {
		return nil, fmt.Errorf("%w: route id is required for authorization", utils.ErrInvalidArgument)
	}

	unlock := o.locks.lock(gw.Fingerprint() + "/" + routeID)
	defer unlock()

	client := o.clients.For(gw)
	route, err := client.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}

	// Never mutate the fetched plugin map; it may be shared.
	plugins := make(map[string]interface{}, len(route.Plugins)+2)
	for key, value := range route.Plugins {
		plugins[key] = value
	}

	// A pre-existing key-auth entry may carry custom settings; keep it.
	if _, ok := plugins[pluginKeyAuth]; !ok {
		plugins[pluginKeyAuth] = map[string]interface{}{}
	}

	restriction, ok := parseConsumerRestriction(plugins[pluginConsumerRestriction])
	if !ok {
		return nil, fmt.Errorf("%w: consumer-restriction plugin on route %s has an unexpected shape", utils.ErrInvalidGatewayConfig, routeID)
	}
	restriction.Type = restrictionTypeConsumerName

	if !restriction.contains(consumerID) {
		restriction.Whitelist = append(restriction.Whitelist, consumerID)
	}

	plugins[pluginConsumerRestriction] = restriction.toMap()
	route.Plugins = plugins

	if err := client.UpdateRoute(ctx, routeID, route); err != nil {
		return nil, err
	}

	o.logger.Info("consumer authorized on route", "gateway", gw.Name, "consumer", consumerID, "route", routeID)

	return &gateway.AuthConfig{RouteID: routeID}, nil
}

// RevokeConsumerAuthorization removes consumerID from the referenced
// route's whitelist. Already-revoked or already-gone state is a no-op, not
// an error; the update call is issued only when a real change occurred.
func (o *Operator) RevokeConsumerAuthorization(ctx context.Context, gw *models.Gateway, consumerID string, auth *gateway.AuthConfig) error {
	if auth == nil || auth.RouteID == "" {
		return nil
	}
	routeID := auth.RouteID

	unlock := o.locks.lock(gw.Fingerprint() + "/" + routeID)
	defer unlock()

	client := o.clients.For(gw)
	route, err := client.GetRoute(ctx, routeID)
	if err != nil {
		if errors.Is(err, utils.ErrRouteNotFound) {
			return nil
		}
		return err
	}

	raw, ok := route.Plugins[pluginConsumerRestriction]
	if !ok {
		return nil
	}

	restriction, ok := parseConsumerRestriction(raw)
	if !ok {
		return nil
	}

	if !restriction.remove(consumerID) {
		return nil
	}

	plugins := make(map[string]interface{}, len(route.Plugins))
	for key, value := range route.Plugins {
		plugins[key] = value
	}

	if len(restriction.Whitelist) == 0 {
		// An empty restriction has ambiguous default-deny semantics on the
		// gateway side; drop the entry entirely.
		delete(plugins, pluginConsumerRestriction)
	} else {
		plugins[pluginConsumerRestriction] = restriction.toMap()
	}

	route.Plugins = plugins
	if err := client.UpdateRoute(ctx, routeID, route); err != nil {
		// The route may vanish between the read and the write; gone means
		// there is nothing left to revoke.
		if errors.Is(err, utils.ErrRouteNotFound) {
			return nil
		}
		return err
	}

	o.logger.Info("consumer authorization revoked", "gateway", gw.Name, "consumer", consumerID, "route", routeID)
	return nil
}

// routeLocks serializes grant/revoke per route within this process
type routeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRouteLocks() *routeLocks {
	return &routeLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *routeLocks) lock(key string) func() {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// errorsIsAny reports whether err matches any of the given targets
func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
