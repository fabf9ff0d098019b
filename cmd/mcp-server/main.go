package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/mbenaiss/wati-mcp/config"
	"github.com/mbenaiss/wati-mcp/mcp"
	"github.com/mbenaiss/wati-mcp/wati"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// logrus writes to stderr by default, which keeps stdout free for
	// the MCP protocol.
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	client := wati.NewClient(cfg)

	mcpServer := mcp.NewMCPServer(client, "WATI WhatsApp API", "1.0.0")
	if err := mcp.StartMCPServer(mcpServer); err != nil {
		log.Fatalf("Failed to start MCP server: %v", err)
	}
}
