package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/leonardcser/filecache/internal/cache"
)

// CacheGetHandler returns the MCP tool handler for the "cache-get" tool.
func CacheGetHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		key, err := req.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		v, err := c.Get(key, nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if v == nil {
			return mcp.NewToolResultText("(miss)"), nil
		}
		return mcp.NewToolResultText(formatValue(v)), nil
	}
}

// CacheSetHandler returns the MCP tool handler for the "cache-set" tool.
// A missing ttl_seconds stores the value without expiry.
func CacheSetHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		key, err := req.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value, err := req.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var ttl any
		if _, ok := req.GetArguments()["ttl_seconds"]; ok {
			ttl = req.GetInt("ttl_seconds", 0)
		}
		ok, err := c.Set(key, value, ttl)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return boolResult(ok), nil
	}
}

// CacheDeleteHandler returns the MCP tool handler for the "cache-delete" tool.
func CacheDeleteHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := req.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ok, err := c.Delete(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return boolResult(ok), nil
	}
}

// CacheHasHandler returns the MCP tool handler for the "cache-has" tool.
func CacheHasHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := req.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ok, err := c.Has(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return boolResult(ok), nil
	}
}

// CacheClearHandler returns the MCP tool handler for the "cache-clear" tool.
func CacheClearHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return boolResult(c.Clear()), nil
	}
}

// CacheGetManyHandler returns the MCP tool handler for the "cache-get-many" tool.
func CacheGetManyHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("keys")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		got, err := c.GetMultiple(splitKeys(raw), nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var sb strings.Builder
		for pair := got.Oldest(); pair != nil; pair = pair.Next() {
			sb.WriteString(pair.Key)
			sb.WriteString("=")
			if pair.Value == nil {
				sb.WriteString("(miss)")
			} else {
				sb.WriteString(formatValue(pair.Value))
			}
			sb.WriteString("\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// CacheSetManyHandler returns the MCP tool handler for the "cache-set-many" tool.
// Entries are written in the order given and the first failure stops the rest.
func CacheSetManyHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		raw, err := req.RequireString("entries")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		values, err := splitEntries(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var ttl any
		if _, ok := req.GetArguments()["ttl_seconds"]; ok {
			ttl = req.GetInt("ttl_seconds", 0)
		}
		ok, err := c.SetMultiple(values, ttl)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return boolResult(ok), nil
	}
}

// CacheDeleteManyHandler returns the MCP tool handler for the "cache-delete-many" tool.
func CacheDeleteManyHandler(c cache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("keys")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ok, err := c.DeleteMultiple(splitKeys(raw))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return boolResult(ok), nil
	}
}

// splitEntries parses comma-separated key=value pairs, keeping their order.
func splitEntries(raw string) (*orderedmap.OrderedMap[string, any], error) {
	values := orderedmap.New[string, any]()
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		k, v, found := strings.Cut(item, "=")
		if !found {
			return nil, fmt.Errorf("entry %q is not key=value", item)
		}
		values.Set(strings.TrimSpace(k), v)
	}
	return values, nil
}

// splitKeys parses a comma-separated key list, dropping blanks.
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	}
	return fmt.Sprint(v)
}

func boolResult(ok bool) *mcp.CallToolResult {
	return mcp.NewToolResultText(strconv.FormatBool(ok))
}
