package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/devfolio/devfolio/internal/api"
	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/llm"
	"github.com/devfolio/devfolio/internal/store"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("devfolio: .env file not loaded", "error", err)
	} else {
		logger.Info("devfolio: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite database")
	flag.Parse()

	logger.Info("devfolio: startup initiated", "addr", *addr, "db", *dbPath)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("devfolio: store initialization failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	provider := llm.NewProvider()
	logger.Info("devfolio: llm provider ready", "provider", provider.Name())

	server, err := api.NewServer(st, provider, api.DefaultConfig())
	if err != nil {
		logger.Error("devfolio: server initialization failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("devfolio: listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("devfolio: server stopped", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}
}

func defaultDBPath() string {
	if env := strings.TrimSpace(os.Getenv("DB_PATH")); env != "" {
		return env
	}
	return filepath.Join("data", "devfolio.db")
}
