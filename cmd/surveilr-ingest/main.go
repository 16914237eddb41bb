// -----------------------------------------------------------------------
// Last Modified: Saturday, 1st August 2026 12:00:00 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/surveilr/internal/common"
	"github.com/ternarybob/surveilr/internal/ingest/classify"
	"github.com/ternarybob/surveilr/internal/ingest/collection"
	"github.com/ternarybob/surveilr/internal/ingest/enumerate"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/rules"
	"github.com/ternarybob/surveilr/internal/ingest/shellexec"
)

// rootPaths is a custom flag type that allows multiple -root flags.
type rootPaths []string

func (r *rootPaths) String() string { return fmt.Sprintf("%v", *r) }
func (r *rootPaths) Set(value string) error {
	*r = append(*r, value)
	return nil
}

var (
	configFile  = flag.String("config", "", "Configuration file path (TOML)")
	rulesFile   = flag.String("rules", "", "Rule-set TOML file path (overrides config's rules.path)")
	roots       rootPaths
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&roots, "root", "Root path to walk (can be specified multiple times, overrides config's ingest.roots)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("surveilr-ingest version %s\n", common.GetVersion())
		os.Exit(0)
	}

	config, err := common.LoadFromFile(*configFile)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	if len(roots) > 0 {
		config.Ingest.Roots = roots
	}
	if *rulesFile != "" {
		config.Rules.Path = *rulesFile
	}

	common.InstallCrashHandler("./logs")
	defer common.RecoverWithCrashFile()

	logger := common.SetupLogger(config)
	runID := common.NewRunID()
	logger.Info().Str("run_id", runID).Msg("starting ingest run")

	rs, err := loadRules(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load classification rules")
	}

	classifier := classify.New(rs)
	shellFactory := shellexec.OSFactory{}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		total, ignored, capturable, acquired int
	)

	for _, root := range config.Ingest.Roots {
		col := buildCollection(config, root, classifier, shellFactory, logger)

		for outcome := range col.Encountered(ctx) {
			total++
			switch outcome.Kind {
			case resource.Ignored:
				ignored++
				continue
			case resource.CapturableExecOutcome:
				capturable++
			case resource.ResourceOutcome:
				if outcome.Content != nil && outcome.Content.HasSuppliers() {
					acquired++
				}
			}

			emit(outcome, logger)
		}
	}

	logger.Info().
		Str("run_id", runID).
		Int("total", total).
		Int("ignored", ignored).
		Int("capturable", capturable).
		Int("content_acquirable", acquired).
		Msg("ingest run complete")
}

func loadRules(config *common.Config, logger arbor.ILogger) (*rules.Set, error) {
	if config.Rules.Path == "" {
		return rules.Default(), nil
	}

	data, err := os.ReadFile(config.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("read rules file %s: %w", config.Rules.Path, err)
	}
	return rules.LoadTOML(data, logger)
}

func buildCollection(config *common.Config, root string, classifier *classify.Classifier, shellFactory resource.ShellExecutiveFactory, logger arbor.ILogger) *collection.Collection {
	if config.Ingest.HonorGitignore {
		enumerator := &enumerate.IgnoreAwareEnumerator{
			Root:           root,
			ExcludeHidden:  config.Ingest.ExcludeHidden,
			IgnoreFileName: config.Ingest.IgnoreFileName,
			Logger:         logger,
		}
		return collection.New(enumerator, classifier, shellFactory)
	}

	enumerator := &enumerate.WalkDirEnumerator{Root: root, Logger: logger}
	return collection.New(enumerator, classifier, shellFactory)
}

// emit logs a one-line summary per encountered outcome; a real consumer
// would dispatch into uniform.Dispatch and hand the result to a
// transformer instead.
func emit(outcome resource.Encountered, logger arbor.ILogger) {
	entry := logger.Debug().Str("uri", outcome.URI).Str("kind", outcome.Kind.String())
	if outcome.Content != nil && outcome.Content.Nature != nil {
		entry = entry.Str("nature", *outcome.Content.Nature)
	}
	if outcome.Exec != nil {
		entry = entry.Bool("invokable", outcome.Exec.Invokable()).Bool("batch_sql", outcome.Exec.IsBatchedSQL)
	}
	entry.Msg("encountered resource")
}

// summarize renders an outcome as JSON for ad-hoc piping; unused by the
// default run but kept available for -debug-json style invocations.
func summarize(outcome resource.Encountered) ([]byte, error) {
	type summary struct {
		URI   string `json:"uri"`
		Kind  string `json:"kind"`
		Flags string `json:"flags"`
	}
	return json.Marshal(summary{URI: outcome.URI, Kind: outcome.Kind.String(), Flags: outcome.Class.Flags.String()})
}
