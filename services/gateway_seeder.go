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

package services

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/apiopenplatform/portal-gateway-service/models"
	"github.com/apiopenplatform/portal-gateway-service/repositories"
)

// GatewaySeed is one declarative gateway entry in the seed file
type GatewaySeed struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	GatewayType   string `json:"gatewayType"`
	AdminEndpoint string `json:"adminEndpoint"`
	AdminAPIKey   string `json:"adminApiKey"`
	TimeoutMillis int64  `json:"timeoutMillis,omitempty"`
}

// GatewaySeedFile is the root document of the seed file
type GatewaySeedFile struct {
	Gateways []GatewaySeed `json:"gateways"`
}

// SeedGateways loads gateway records from a YAML seed file. Idempotent by
// name: entries whose name already exists are skipped.
func SeedGateways(path string, gatewayRepo repositories.GatewayRepository, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read gateway seed file: %w", err)
	}

	var seedFile GatewaySeedFile
	if err := yaml.Unmarshal(data, &seedFile); err != nil {
		return fmt.Errorf("failed to parse gateway seed file: %w", err)
	}

	for _, seed := range seedFile.Gateways {
		if seed.Name == "" || seed.AdminEndpoint == "" {
			return fmt.Errorf("gateway seed entry requires name and adminEndpoint, got name=%q", seed.Name)
		}

		existing, err := gatewayRepo.GetByName(seed.Name)
		if err != nil {
			return fmt.Errorf("failed to check gateway %q: %w", seed.Name, err)
		}
		if existing != nil {
			logger.Debug("gateway already seeded", "gateway", seed.Name)
			continue
		}

		gw := &models.Gateway{
			UUID:          uuid.New(),
			Name:          seed.Name,
			Description:   seed.Description,
			GatewayType:   models.GatewayType(seed.GatewayType),
			AdminEndpoint: seed.AdminEndpoint,
			AdminAPIKey:   seed.AdminAPIKey,
			TimeoutMillis: seed.TimeoutMillis,
		}
		if err := gatewayRepo.Create(gw); err != nil {
			return fmt.Errorf("failed to seed gateway %q: %w", seed.Name, err)
		}
		logger.Info("gateway seeded", "gateway", seed.Name, "gatewayType", seed.GatewayType)
	}

	return nil
}
