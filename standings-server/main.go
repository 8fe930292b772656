// Command standings-server exposes the standings pipeline over MCP:
// tools for the full report, the median-record tally, and single-team
// lookup, behind API-key auth.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ff-standings-mcp/internal/config"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StandingsArgs selects the league and season for a report tool call.
// Zero values fall back to the server's configuration.
type StandingsArgs struct {
	LeagueID int `json:"league_id,omitempty" jsonschema:"ESPN league id (0 = server default)"`
	Year     int `json:"year,omitempty" jsonschema:"Season year (0 = server default)"`
}

// TeamLookupArgs identifies a single team by display name or id.
type TeamLookupArgs struct {
	LeagueID int    `json:"league_id,omitempty" jsonschema:"ESPN league id (0 = server default)"`
	Year     int    `json:"year,omitempty" jsonschema:"Season year (0 = server default)"`
	Team     string `json:"team" jsonschema:"Team display name or team id (required)"`
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		configPath  = flag.String("config", "", "path to YAML config (optional)")
		rawRoot     = flag.String("raw-root", "", "raw response cache root (overrides config)")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via STANDINGS_MCP_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *rawRoot != "" {
		cfg.RawRoot = *rawRoot
	}
	if cfg.SWID == "" || cfg.ESPNS2 == "" {
		log.Fatal().Msg("missing SWID or ESPN_S2 environment variables")
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ff-standings-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 4)

	addTool(server, &registry, &mcp.Tool{
		Name:        "standings",
		Description: "Full standings report: records, win %, games-behind, rank, points, budget",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildStandings(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "median_records",
		Description: "Per-team median-game win/loss tally for the season to date",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildMedianRecords(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "team_lookup",
		Description: "One team's standings row by display name or id",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamLookupArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Team) == "" {
			return toolError(fmt.Errorf("team is required")), nil, nil
		}
		out, err := lookupTeam(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("STANDINGS_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		log.Fatal().Msg("STANDINGS_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(*authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.Info().Str("addr", *addr).Str("path", *mcpPath).Msg("MCP HTTP server listening")
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolMarshal(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
