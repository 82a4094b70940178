package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/orderdesk/orderdesk/internal/api/http"
	"github.com/orderdesk/orderdesk/internal/application/agent"
	"github.com/orderdesk/orderdesk/internal/config"
	"github.com/orderdesk/orderdesk/internal/infrastructure/identityapi"
	"github.com/orderdesk/orderdesk/internal/infrastructure/llm"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// infrastructure clients
	workflowClient := workflowapi.NewHTTPClient(cfg.WorkflowAPIURL, cfg.UpstreamTimeout)
	identityClient := identityapi.NewHTTPClient(cfg.IdentityAPIURL, cfg.UpstreamTimeout)
	llmClient, err := llm.NewHTTPClient(llm.Config{
		BaseURL: cfg.LLMAPIURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		log.Fatalf("llm client error: %v", err)
	}

	// services
	catalog := agent.NewCatalog(workflowClient)
	contextBuilder := agent.NewContextBuilder(workflowClient, cfg.ContextOrderLimit, logger)
	planner := agent.NewPlanner(llmClient, logger)
	executor := agent.NewExecutor(catalog, workflowClient, logger)
	synthesizer := agent.NewSynthesizer(llmClient, logger)
	agentSvc := agent.NewService(identityClient, catalog, contextBuilder, planner, executor, synthesizer, logger)

	// API server
	apiServer := httpapi.NewServer(agentSvc, logger)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
