package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/stores"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// storeManager is the store manager handed to the executors.
var storeManager contract.StoreManager = stores.Manager

// startProfiling starts CPU and memory profiling if enabled.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Reports own stdout, so profiling notes go to stderr
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "mediascore",
	Short:              "Rate media outlets on how they cover people and issues.",
	Long:               `Mediascore turns analysed news documents into weighted ratings per outlet and reports on the people they quote.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// useConfigFile points viper at the explicit config file or the default search paths.
func useConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".mediascore") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	useConfigFile()

	viper.SetEnvPrefix("MEDIASCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	d := contract.DefaultRawInput()
	viper.SetDefault("precision", d.Precision)
	viper.SetDefault("output", d.Output)
	viper.SetDefault("color", d.Color)
	viper.SetDefault("document-backend", d.DocumentBackend)
	viper.SetDefault("document-db-connect", "")
	viper.SetDefault("history-backend", d.HistoryBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("log-level", d.LogLevel)
	viper.SetDefault("tree", d.Tree)
	viper.SetDefault("bucket-limit", d.BucketLimit)
	viper.SetDefault("decay", d.Decay)
	viper.SetDefault("trend-up", d.TrendUp)
	viper.SetDefault("trend-down", d.TrendDown)
	viper.SetDefault("top-people", d.TopPeople)
	viper.SetDefault("trend-limit", d.TrendLimit)
	viper.SetDefault("quote-limit", d.QuoteLimit)
	viper.SetDefault("quotes-per-document", d.QuotesPerDocument)
}

// sharedSetup unmarshals config, runs validation and opens both stores.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing into the global 'cfg'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	logger := contract.NewLogger(cfg.Log)
	rootCtx = logger.WithContext(ctx)

	// 4. Open the stores with the validated config
	if err := stores.InitStores(cfg.DocumentBackend, cfg.DocumentDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	useConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// maintenanceLogger attaches a logger built from the raw log flags to rootCtx.
// Maintenance commands skip full validation, so they read the flags directly.
func maintenanceLogger() {
	logger := contract.NewLogger(contract.LogConfig{
		Level:  viper.GetString("log-level"),
		Pretty: viper.GetBool("log-pretty"),
	})
	rootCtx = logger.WithContext(rootCtx)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
