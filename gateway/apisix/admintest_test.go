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
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/apiopenplatform/portal-gateway-service/models"
)

const testAdminKey = "test-admin-key"

// fakeAdmin is an in-memory APISIX Admin API for tests. It mirrors the real
// wire shapes: the list envelope with outer keys, the single-item envelope,
// PUT for create and update, X-API-KEY auth.
type fakeAdmin struct {
	t *testing.T

	mu        sync.Mutex
	routes    map[string]*Route
	consumers map[string]*Consumer

	// listValuesCarryID controls whether list entries repeat the id inside
	// the value; the real gateway may put it only in the outer key
	listValuesCarryID bool

	// rejectRouteWrites makes route PUTs answer 404, as when the route was
	// deleted by another admin between a read and the write
	rejectRouteWrites bool

	routeUpdates    int
	consumerUpdates int

	server *httptest.Server
}

func newFakeAdmin(t *testing.T) *fakeAdmin {
	t.Helper()
	fa := &fakeAdmin{
		t:         t,
		routes:    make(map[string]*Route),
		consumers: make(map[string]*Consumer),
	}
	fa.server = httptest.NewServer(http.HandlerFunc(fa.handle))
	t.Cleanup(fa.server.Close)
	return fa
}

func (f *fakeAdmin) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-API-KEY") != testAdminKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/apisix/admin")
	switch {
	case path == "/routes" && r.Method == http.MethodGet:
		f.writeRouteList(w)
	case strings.HasPrefix(path, "/routes/"):
		f.handleRoute(w, r, strings.TrimPrefix(path, "/routes/"))
	case path == "/consumers" && r.Method == http.MethodGet:
		f.writeConsumerList(w)
	case strings.HasPrefix(path, "/consumers/"):
		f.handleConsumer(w, r, strings.TrimPrefix(path, "/consumers/"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAdmin) handleRoute(w http.ResponseWriter, r *http.Request, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		route, ok := f.routes[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]interface{}{"value": route})
	case http.MethodPut:
		if f.rejectRouteWrites {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var route Route
		if err := json.Unmarshal(body, &route); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		route.ID = id
		f.routes[id] = &route
		f.routeUpdates++
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		if _, ok := f.routes[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.routes, id)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeAdmin) handleConsumer(w http.ResponseWriter, r *http.Request, username string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		consumer, ok := f.consumers[username]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]interface{}{"value": consumer})
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		var consumer Consumer
		if err := json.Unmarshal(body, &consumer); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		consumer.Username = username
		f.consumers[username] = &consumer
		f.consumerUpdates++
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		if _, ok := f.consumers[username]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.consumers, username)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeAdmin) writeRouteList(w http.ResponseWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.routes))
	for id := range f.routes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		value := *f.routes[id]
		if !f.listValuesCarryID {
			value.ID = ""
		}
		nodes = append(nodes, map[string]interface{}{
			"key":   "/apisix/routes/" + id,
			"value": value,
		})
	}
	writeJSON(w, map[string]interface{}{"list": map[string]interface{}{"nodes": nodes}})
}

func (f *fakeAdmin) writeConsumerList(w http.ResponseWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	usernames := make([]string, 0, len(f.consumers))
	for username := range f.consumers {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	nodes := make([]map[string]interface{}, 0, len(usernames))
	for _, username := range usernames {
		value := *f.consumers[username]
		if !f.listValuesCarryID {
			value.Username = ""
		}
		nodes = append(nodes, map[string]interface{}{
			"key":   "/apisix/consumers/" + username,
			"value": value,
		})
	}
	writeJSON(w, map[string]interface{}{"list": map[string]interface{}{"nodes": nodes}})
}

// setRoute seeds a route directly into the store
func (f *fakeAdmin) setRoute(route *Route) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route.ID] = route
}

// route returns a copy-free view of a stored route
func (f *fakeAdmin) route(id string) *Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.routes[id]
}

// consumer returns a stored consumer by username
func (f *fakeAdmin) consumer(username string) *Consumer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consumers[username]
}

// updateCount returns the number of route PUT calls seen so far
func (f *fakeAdmin) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.routeUpdates
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// testGateway builds a gateway record pointing at the fake admin server
func (f *fakeAdmin) testGateway() *models.Gateway {
	return &models.Gateway{
		UUID:          uuid.New(),
		Name:          "test-gateway",
		GatewayType:   models.GatewayTypeApisix,
		AdminEndpoint: f.server.URL,
		AdminAPIKey:   testAdminKey,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boolPtr(b bool) *bool { return &b }
