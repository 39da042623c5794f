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
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/utils"
)

// stubOperator satisfies Operator for registry lookups only
type stubOperator struct {
	Operator
	gatewayType models.GatewayType
}

func (s *stubOperator) GatewayType() models.GatewayType {
	return s.gatewayType
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	apisix := &stubOperator{gatewayType: models.GatewayTypeApisix}
	registry.Register(apisix)

	op, err := registry.Operator(models.GatewayTypeApisix)
	require.NoError(t, err)
	assert.Same(t, apisix, op)
}

func TestRegistryUnknownType(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))

	op, err := registry.Operator(models.GatewayType("KONG"))
	assert.Nil(t, op)
	assert.ErrorIs(t, err, utils.ErrInvalidGatewayType)
}

func TestRegistryReplacesRegistration(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	first := &stubOperator{gatewayType: models.GatewayTypeApisix}
	second := &stubOperator{gatewayType: models.GatewayTypeApisix}

	registry.Register(first)
	registry.Register(second)

	op, err := registry.Operator(models.GatewayTypeApisix)
	require.NoError(t, err)
	assert.Same(t, second, op)
}

func TestPageOf(t *testing.T) {
	items := make([]int, 0, 25)
	for i := 1; i <= 25; i++ {
		items = append(items, i)
	}

	t.Run("middle page", func(t *testing.T) {
		page := PageOf(items, 2, 10)
		assert.Equal(t, 25, page.TotalCount)
		require.Len(t, page.Content, 10)
		assert.Equal(t, 11, page.Content[0])
		assert.Equal(t, 20, page.Content[9])
	})

	t.Run("short last page", func(t *testing.T) {
		page := PageOf(items, 3, 10)
		require.Len(t, page.Content, 5)
		assert.Equal(t, 21, page.Content[0])
		assert.Equal(t, 25, page.Content[4])
	})

	t.Run("page below one", func(t *testing.T) {
		for _, page := range []int{0, -1, -10} {
			result := PageOf(items, page, 10)
			assert.Empty(t, result.Content)
			assert.Equal(t, 25, result.TotalCount)
			assert.Equal(t, page, result.Page)
		}
	})

	t.Run("past the end", func(t *testing.T) {
		page := PageOf(items, 10, 10)
		assert.Empty(t, page.Content)
		assert.Equal(t, 25, page.TotalCount)
	})

	t.Run("empty input", func(t *testing.T) {
		page := PageOf([]int{}, 1, 10)
		assert.Empty(t, page.Content)
		assert.Equal(t, 0, page.TotalCount)
	})
}
