package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/twin-sim/internal/dataset"
	"github.com/spigell/twin-sim/internal/filtering"
	"github.com/spigell/twin-sim/internal/logger"
	"github.com/spigell/twin-sim/internal/results"
	"github.com/spigell/twin-sim/internal/twin"
)

const (
	PromptWriteResults  = "Write results file"
	PromptReportByRoles = "Report by roles"
	PromptBestByPerson  = "Best role per candidate"
	PromptResultsToTmp  = "Dump results to tmp file"
	PromptExit          = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Procced?",
	Items: []string{PromptWriteResults, PromptReportByRoles, PromptBestByPerson, PromptResultsToTmp, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate every candidate against every role",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "write the results file without asking")
	runCmd.Flags().String("data", "", "a dataset file with candidates and optional roles")
	runCmd.Flags().StringP("output", "o", "", "a file to write results to")
	runCmd.Flags().StringSlice("skip-filter", nil, "disable a filter by name (roles, excluded_candidates, minimum_score)")

	viper.BindPFlag("data", runCmd.Flags().Lookup("data"))
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("skip-filters", runCmd.Flags().Lookup("skip-filter"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the twin-sim", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	ds, err := dataset.Load(config.Data)
	if err != nil {
		logger.Fatal("loading dataset", zap.Error(err), zap.String("hint", "set --data, the 'data' key or TWIN_SIM_DATA"))
	}

	res, err := simulate(ctx, config, ds, logger)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	if res.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no results left after filters"))
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Candidate performance simulation (scores 0..100):\n\n")
	if err := res.WriteTable(out); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}

	action := PromptWriteResults
	for {
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, logger, config, res, out); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// simulate scores the dataset and applies the configured filters.
func simulate(ctx context.Context, config *Config, ds *dataset.Dataset, logger *zap.Logger) (*results.Results, error) {
	steps, err := prepareFilters(config.SkipFilters)
	if err != nil {
		return nil, err
	}

	roles := resolveRoles(config, ds, logger)
	extractor := twin.NewExtractor(catalogFromConfig(config))

	logger.Info("simulating",
		zap.Int("candidates", len(ds.Candidates)),
		zap.Int("roles", len(roles)),
		zap.Strings("catalog", extractor.Catalog()),
	)

	sim := twin.NewSimulator(extractor, logger, config.MaxLogLength)
	res := results.New(sim.SimulateAll(ds.Candidates, roles))

	filtered, err := filtering.Run(ctx, config.Filters, filtering.Deps{Logger: logger}, steps, res)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}

	// Statuses are described after Run so validated settings show up in details.
	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return filtered, nil
}

// prepareFilters returns the default filters with the skipped ones disabled.
func prepareFilters(skip []string) ([]filtering.Filter, error) {
	steps := filtering.Default()

	known := make(map[string]bool, len(steps))
	for _, step := range steps {
		known[step.Name()] = true
	}

	for _, name := range skip {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown filter to skip: %q", name)
		}
		filtering.DisableByName(steps, name, "skipped via --skip-filter")
	}

	return steps, nil
}

// resolveRoles prefers configured roles, then roles from the dataset, then the demo roles.
func resolveRoles(config *Config, ds *dataset.Dataset, logger *zap.Logger) []*twin.RoleProfile {
	switch {
	case len(config.Roles) > 0:
		logger.Debug("using roles from config", zap.Int("count", len(config.Roles)))
		return config.Roles
	case ds != nil && len(ds.Roles) > 0:
		logger.Debug("using roles from dataset", zap.Int("count", len(ds.Roles)))
		return ds.Roles
	default:
		logger.Info("no roles configured, using demo roles")
		return dataset.DemoRoles()
	}
}

func catalogFromConfig(config *Config) twin.Catalog {
	if len(config.Catalog) == 0 {
		return nil
	}
	return twin.Catalog(config.Catalog)
}

func handleAction(action string, logger *zap.Logger, config *Config, res *results.Results, out io.Writer) error {
	switch action {
	case PromptWriteResults:
		if err := res.ToFile(config.Output); err != nil {
			return fmt.Errorf("write results to %q: %w", config.Output, err)
		}
		logger.Info("results written", zap.String("filename", config.Output), zap.Int("count", res.Len()))
		return errExit
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByRoles:
		pretty, _ := json.MarshalIndent(res.ReportByRole(), "", "  ")
		logger.Info(string(pretty), zap.Int("results count", res.Len()))
		return nil
	case PromptBestByPerson:
		return res.Best().WriteTable(out)
	case PromptResultsToTmp:
		filename, err := res.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
