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

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGatewayFingerprint(t *testing.T) {
	a := &Gateway{AdminEndpoint: "http://gw:9180", AdminAPIKey: "key"}
	b := &Gateway{Name: "other-name", AdminEndpoint: "http://gw:9180", AdminAPIKey: "key"}
	c := &Gateway{AdminEndpoint: "http://gw:9180", AdminAPIKey: "rotated"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestGatewayTimeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, (&Gateway{TimeoutMillis: 2000}).Timeout(30000))
	assert.Equal(t, 30*time.Second, (&Gateway{}).Timeout(30000))
	assert.Equal(t, 30*time.Second, (&Gateway{TimeoutMillis: -1}).Timeout(30000))
}

func TestConsumerCredentialFirstAPIKey(t *testing.T) {
	var nilCredential *ConsumerCredential
	assert.Equal(t, "", nilCredential.FirstAPIKey())
	assert.Equal(t, "", (&ConsumerCredential{}).FirstAPIKey())

	credential := &ConsumerCredential{APIKeys: []APIKeyCredential{{APIKey: "first"}, {APIKey: "second"}}}
	assert.Equal(t, "first", credential.FirstAPIKey())
}
