package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"TrendSentinel/internal/analyzer"
	"TrendSentinel/internal/collector"
	"TrendSentinel/internal/config"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/recorder"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment [SYMBOL]",
		Short: "Score EMA trend sentiment for one symbol",
		Long: `Fetches the daily price history of a symbol, derives daily and
Thursday-anchored weekly EMAs (5, 10, 15) and reports the share of bullish
price/EMA comparisons for the intraday and weekly timeframes.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	cmd.Flags().String("config", defaultConfig, "Configuration file path")
	cmd.Flags().String("provider", "", "Data provider: nepsealpha or yahoo")
	cmd.Flags().String("snapshot-dir", "", "Directory for enriched series CSV snapshots")
	cmd.Flags().Bool("no-snapshot", false, "Do not write the enriched series snapshot")
	cmd.Flags().Bool("notify", false, "Send the report to Telegram")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[FATAL] load config: %v", err)
		return err
	}
	if err := applyFlags(cmd, cfg, args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[FATAL] config validation: %v", err)
		return err
	}

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	rec := newRecorder(cfg)
	defer rec.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Sentiment analysis for %s started ===\n", cfg.Symbol)
	res, series := analyzer.NewAnalyzer(fetcher, rec).Analyze(ctx, cfg.Symbol)

	asJSON, _ := cmd.Flags().GetBool("json")
	if err := printResult(out, res, asJSON); err != nil {
		return err
	}

	if notify, _ := cmd.Flags().GetBool("notify"); notify {
		sendReport(ctx, cfg, res, series)
	}

	fmt.Fprintf(out, "=== Sentiment analysis for %s finished ===\n", cfg.Symbol)
	if res.Failed() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", res.Error)
		return fmt.Errorf("analysis failed: %s", res.Error)
	}
	return nil
}

// applyFlags layers command-line values over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) == 1 {
		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		if symbol == "" {
			return fmt.Errorf("symbol must not be blank")
		}
		cfg.Symbol = symbol
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v, _ := cmd.Flags().GetString("snapshot-dir"); v != "" {
		cfg.Snapshot.Dir = v
	}
	if off, _ := cmd.Flags().GetBool("no-snapshot"); off {
		disabled := false
		cfg.Snapshot.Enabled = &disabled
	}
	return nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	if ds.Provider == config.ProviderYahoo {
		f := collector.NewYahooFetcher(cfg.Proxy, ds.Timeout)
		f.Range = ds.YahooRange
		return f
	}
	return collector.NewNepseAlphaFetcher(ds.BaseURL, ds.FSK, ds.Resolution, cfg.Proxy, ds.Timeout)
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if !cfg.SnapshotEnabled() {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewCSVRecorder(cfg.Snapshot.Dir)
	if err != nil {
		log.Printf("[WARN] init csv recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return rec
}

func printResult(w io.Writer, res model.SentimentResult, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, notifier.FormatResult(res))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func sendReport(ctx context.Context, cfg *config.Config, res model.SentimentResult, series model.EnrichedSeries) {
	if !cfg.TelegramEnabled() {
		log.Println("[WARN] --notify set but telegram is not configured")
		return
	}
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if err := tn.SendWithRetry(ctx, notifier.FormatReport(res, series), 3); err != nil {
		log.Printf("[ERROR] send telegram report: %v", err)
	}
}
