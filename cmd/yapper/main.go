package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/parkourer10/yapper/config"
	"github.com/parkourer10/yapper/internal/bot"
	"github.com/parkourer10/yapper/internal/conversation"
	"github.com/parkourer10/yapper/internal/conversation/inmemory"
	"github.com/parkourer10/yapper/internal/conversation/journal"
	redis_store "github.com/parkourer10/yapper/internal/conversation/redis"
	"github.com/parkourer10/yapper/internal/ops"
	"github.com/parkourer10/yapper/internal/search"
	"github.com/parkourer10/yapper/internal/search/duckduckgo"
	"github.com/parkourer10/yapper/internal/telemetry"
	"github.com/parkourer10/yapper/provider"
)

func main() {
	var root = &cobra.Command{Use: "yapper"}
	root.AddCommand(runCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCMD() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "config file path (default: ./config.yaml if present)")
	return cmd
}

func run(cfg *config.Config) error {
	logger := log.New(log.Writer(), "[YAPPER] ", log.LstdFlags)

	jrnl := journal.New(cfg.Journal.Path)
	store := newStore(cfg, jrnl)

	llm, err := provider.NewProvider(provider.Ollama, cfg.LLM)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	searcher := search.NewService(
		llm,
		duckduckgo.NewClient(cfg.Search.BaseURL, cfg.Search.Timeout),
		duckduckgo.Extractor{Max: cfg.Search.MaxResults},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(reg)

	router := bot.NewRouter(store, llm, searcher, bot.NewDeliverer(metrics), metrics)
	b, err := bot.New(cfg.Discord.Token, router)
	if err != nil {
		return err
	}

	var opsServer *ops.Server
	if cfg.Ops.Enabled {
		opsServer = ops.New(cfg.Ops.Address, reg)
		go func() {
			if err := opsServer.Start(); err != nil {
				logger.Printf("ops server: %v", err)
			}
		}()
	}

	if err := b.Start(); err != nil {
		return fmt.Errorf("discord login: %w", err)
	}
	logger.Println("bot running, ctrl+c to exit")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Println("shutting down")
	if opsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := opsServer.Shutdown(ctx); err != nil {
			logger.Printf("ops shutdown: %v", err)
		}
	}
	return b.Stop()
}

func newStore(cfg *config.Config, jrnl *journal.Journal) conversation.Store {
	switch cfg.History.Store {
	case "redis":
		r := cfg.History.Redis
		return redis_store.NewStore(r.Addr, r.Password, r.DB, cfg.History.Limit, jrnl)
	default:
		return inmemory.NewStore(cfg.History.Limit, jrnl)
	}
}
