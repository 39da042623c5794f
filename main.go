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

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apiopenplatform/portal-gateway-service/config"
	"github.com/apiopenplatform/portal-gateway-service/db"
	dbmigrations "github.com/apiopenplatform/portal-gateway-service/db_migrations"
	"github.com/apiopenplatform/portal-gateway-service/repositories"
	"github.com/apiopenplatform/portal-gateway-service/services"
	"github.com/apiopenplatform/portal-gateway-service/utils"
	"github.com/apiopenplatform/portal-gateway-service/wiring"
)

func main() {
	cfg := config.GetConfig()

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := db.Init(cfg); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	if err := dbmigrations.Run(db.DB(context.Background())); err != nil {
		logger.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	gatewayRepo := repositories.NewGatewayRepo(db.DB(context.Background()))
	consumerRepo := repositories.NewConsumerRepo(db.DB(context.Background()))

	if cfg.Gateway.SeedPath != "" {
		if err := services.SeedGateways(cfg.Gateway.SeedPath, gatewayRepo, logger); err != nil {
			logger.Error("failed to seed gateways", "error", err)
			os.Exit(1)
		}
	}

	registry := wiring.ProvideOperatorRegistry(cfg, logger)
	gatewayService := services.NewGatewayService(gatewayRepo, registry, logger)
	consumerService := services.NewConsumerService(consumerRepo, gatewayService, logger)

	// Startup connectivity report for every registered gateway
	gateways, err := gatewayService.ListGateways()
	if err != nil {
		logger.Error("failed to list gateways", "error", err)
		os.Exit(1)
	}
	for _, gw := range gateways {
		ips, err := gatewayService.FetchGatewayIPs(context.Background(), gw.UUID.String())
		if err == nil && len(ips) == 0 {
			err = utils.ErrGatewayUnreachable
		}
		if err != nil {
			logger.Warn("gateway connectivity check failed", "gateway", gw.Name, "error", err)
			continue
		}
		logger.Info("gateway reachable", "gateway", gw.Name, "hosts", strings.Join(ips, ","))
	}

	consumers, err := consumerService.ListConsumers()
	if err != nil {
		logger.Error("failed to list consumers", "error", err)
		os.Exit(1)
	}

	logger.Info("portal gateway service ready", "gateways", len(gateways), "consumers", len(consumers))

	// The portal's HTTP layer consumes the service in-process; this
	// entrypoint only keeps the process alive for that embedding.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("portal gateway service shutting down")
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}
