package main

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/leonardcser/filecache/internal/config"
	"github.com/leonardcser/filecache/internal/logger"
	tools "github.com/leonardcser/filecache/internal/tools"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		panic(err)
	}
	if cfg.Log != "" {
		err = logger.Init(cfg.Log)
	} else {
		err = logger.InitFromEnv()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Infof("Starting filecache MCP server")

	c, closeCache, err := config.OpenCache(cfg)
	if err != nil {
		logger.Errorf("Failed to open %s cache: %v", cfg.Backend, err)
		panic(err)
	}
	defer closeCache()
	logger.Infof("Opened %s cache (dir=%s bolt_path=%s)", cfg.Backend, cfg.Dir, cfg.BoltPath)

	s := server.NewMCPServer(
		"filecache",
		"0.1.0",
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)

	keyArg := mcp.WithString("key", mcp.Required(), mcp.Description("Cache key: 1-64 characters from A-Z a-z 0-9 _ ."))

	s.AddTool(mcp.NewTool("cache-get",
		mcp.WithDescription("Returns the value stored under a key, or (miss) if it is absent or expired"),
		keyArg,
	), tools.CacheGetHandler(c))

	s.AddTool(mcp.NewTool("cache-set",
		mcp.WithDescription(multiline(
			"Stores a string value under a key",
			"\nUsage notes:",
			"- Omit ttl_seconds to keep the value until deleted",
			"- A ttl_seconds of 0 or less removes the key instead",
		)),
		keyArg,
		mcp.WithString("value", mcp.Required(), mcp.Description("The value to store")),
		mcp.WithNumber("ttl_seconds", mcp.Description("Seconds until the entry expires")),
	), tools.CacheSetHandler(c))

	s.AddTool(mcp.NewTool("cache-delete",
		mcp.WithDescription("Removes a key; returns false if it did not exist"),
		keyArg,
	), tools.CacheDeleteHandler(c))

	s.AddTool(mcp.NewTool("cache-has",
		mcp.WithDescription(multiline(
			"Reports whether an entry exists for a key",
			"- Expiration is not checked; a true result may still read as a miss",
		)),
		keyArg,
	), tools.CacheHasHandler(c))

	s.AddTool(mcp.NewTool("cache-clear",
		mcp.WithDescription("Removes every entry from the cache"),
	), tools.CacheClearHandler(c))

	s.AddTool(mcp.NewTool("cache-get-many",
		mcp.WithDescription("Returns key=value lines for a comma-separated list of keys, in request order"),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Comma-separated cache keys")),
	), tools.CacheGetManyHandler(c))

	s.AddTool(mcp.NewTool("cache-set-many",
		mcp.WithDescription(multiline(
			"Stores comma-separated key=value entries in the order given",
			"\nUsage notes:",
			"- Writing stops at the first entry that fails; earlier entries stay stored",
			"- ttl_seconds applies to every entry, 0 or less removes them",
		)),
		mcp.WithString("entries", mcp.Required(), mcp.Description("Comma-separated key=value pairs")),
		mcp.WithNumber("ttl_seconds", mcp.Description("Seconds until the entries expire")),
	), tools.CacheSetManyHandler(c))

	s.AddTool(mcp.NewTool("cache-delete-many",
		mcp.WithDescription("Removes a comma-separated list of keys; stops and returns false at the first key that did not exist"),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Comma-separated cache keys")),
	), tools.CacheDeleteManyHandler(c))
	logger.Infof("Registered cache tools")

	logger.Infof("Starting MCP server on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("server error: %v", err)
	}
}

// multiline joins lines with newlines for tool descriptions.
func multiline(lines ...string) string { return strings.Join(lines, "\n") }
