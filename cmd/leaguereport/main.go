// Command leaguereport fetches the league from ESPN, computes the
// standings report, merges any external partial-season results, and
// writes the JSON artifact.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ff-standings-mcp/internal/config"
	"ff-standings-mcp/internal/espn"
	"ff-standings-mcp/internal/report"
	"ff-standings-mcp/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		leagueID   = flag.Int("league", 0, "ESPN league id (overrides config)")
		year       = flag.Int("year", 0, "season year (overrides config, 0 = current)")
		out        = flag.String("out", "", "report output path (overrides config)")
		externalF  = flag.String("external", "", "external results file (overrides config)")
		rawRoot    = flag.String("raw-root", "", "raw response cache root (overrides config)")
		live       = flag.Bool("live", false, "bypass the raw cache and refetch everything")
		sleepMS    = flag.Int("sleep-ms", 250, "sleep between API requests in ms")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if !*debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *leagueID != 0 {
		cfg.LeagueID = *leagueID
	}
	if *year != 0 {
		cfg.Year = *year
	}
	if *out != "" {
		cfg.OutputFile = *out
	}
	if *externalF != "" {
		cfg.ExternalFile = *externalF
	}
	if *rawRoot != "" {
		cfg.RawRoot = *rawRoot
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	client := espn.NewClient(store.NewJSONStore(cfg.RawRoot), cfg.LeagueID, cfg.Year, cfg.SWID, cfg.ESPNS2)
	client.Sleep = time.Duration(*sleepMS) * time.Millisecond
	client.UseCache = !*live
	client.DisableWrite = *live

	external := report.LoadExternal(log.Logger, cfg.ExternalFile)

	ctx := context.Background()
	rows, err := report.Generate(ctx, log.Logger, client, external, cfg.Table())
	if err != nil {
		log.Fatal().Err(err).Msg("generate standings")
	}

	if err := report.WriteReport(cfg.OutputFile, rows); err != nil {
		log.Fatal().Err(err).Msg("write report")
	}

	log.Info().Str("path", cfg.OutputFile).Int("teams", len(rows)).Msg("report written")
}
