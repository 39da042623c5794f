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

package utils

import (
	"errors"
	"fmt"
)

var (
	// Resource not found errors
	ErrGatewayNotFound  = errors.New("gateway not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrConsumerNotFound = errors.New("consumer not found")

	// Conflict errors
	ErrGatewayAlreadyExists  = errors.New("gateway already exists")
	ErrConsumerAlreadyExists = errors.New("consumer already exists")

	// Request errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAPIKeyRequired  = fmt.Errorf("%w: api key credential is required", ErrInvalidArgument)

	// Gateway-related errors
	ErrInvalidGatewayType   = errors.New("invalid gateway type")
	ErrInvalidGatewayConfig = errors.New("invalid gateway configuration")
	ErrGatewayUnreachable   = errors.New("gateway unreachable")

	// Operation errors. Part of the operator contract for vendors that
	// cannot offer every operation; the APISIX operator supports them all.
	ErrUnsupportedOperation = errors.New("operation not supported by gateway type")
)
