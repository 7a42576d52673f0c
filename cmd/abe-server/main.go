// Command abe-server runs the HTTP facade over the abe package.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mmsyan/mediated-kpabe/internal/httpapi"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	addr := ":8080"
	if v := os.Getenv("ABE_SERVER_ADDR"); v != "" {
		addr = v
	}

	server := httpapi.NewServer(logger)
	logger.Info("abe-server listening", "addr", addr)
	if err := http.ListenAndServe(addr, server); err != nil {
		logger.Error("abe-server exited", "error", err)
		os.Exit(1)
	}
}
