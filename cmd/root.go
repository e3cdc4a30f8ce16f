package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/ravelry"
)

const snapshotName = ".fiberarts.json"

var (
	cfgFile      string
	snapshotPath string
	verbose      bool

	cfg *viper.Viper
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "fiberarts",
	Short: "Fiber arts catalog lookups and recommendation networks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Path to "+snapshotName+" catalog snapshot")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func initConfig() error {
	cfg = viper.New()
	cfg.SetEnvPrefix("FIBERARTS")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("ravelry.endpoint", ravelry.DefaultEndpoint)
	cfg.SetDefault("ravelry.requests_per_second", 4.0)
	cfg.SetDefault("ravelry.page_parallelism", 4)
	cfg.SetDefault("geocode.endpoint", geo.DefaultGeocodeEndpoint)

	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	cfg.SetConfigName("fiberarts")
	cfg.SetConfigType("yaml")
	cfg.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		cfg.AddConfigPath(filepath.Join(home, ".config", "fiberarts"))
	}
	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func initLogger() error {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = zc.Build()
	}
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

// DiscoverSnapshot finds the catalog snapshot using priority: env > flag >
// walk-up > XDG fallback.
func DiscoverSnapshot() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("FIBERARTS_SNAPSHOT"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if snapshotPath != "" {
		if _, err := os.Stat(snapshotPath); err == nil {
			return snapshotPath, nil
		}
		return "", fmt.Errorf("snapshot not found at --snapshot path: %s", snapshotPath)
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, snapshotName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 4. XDG fallback
	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".local", "share", "fiberarts", "catalog.json")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no %s found (run 'fiberarts fetch', set FIBERARTS_SNAPSHOT, or use --snapshot)", snapshotName)
}

// snapshotWritePath is where fetch stores its snapshot: the --snapshot flag
// when given, otherwise ./%s in the working directory.
func snapshotWritePath() string {
	if snapshotPath != "" {
		return snapshotPath
	}
	if envPath := os.Getenv("FIBERARTS_SNAPSHOT"); envPath != "" {
		return envPath
	}
	return snapshotName
}

func newSource() *ravelry.Client {
	return ravelry.NewClient(ravelry.Config{
		Endpoint:          cfg.GetString("ravelry.endpoint"),
		Username:          cfg.GetString("ravelry.username"),
		Password:          cfg.GetString("ravelry.password"),
		RequestsPerSecond: cfg.GetFloat64("ravelry.requests_per_second"),
		PageParallelism:   cfg.GetInt("ravelry.page_parallelism"),
	}, log)
}

func newGeocoder() *geo.Geocoder {
	return geo.NewGeocoder(cfg.GetString("geocode.endpoint"), cfg.GetString("geocode.api_key"), log)
}

// OpenIndex discovers the snapshot and loads it, attaching the remote
// source so lazy hydration works on cached records.
func OpenIndex() (*catalog.Index, error) {
	path, err := DiscoverSnapshot()
	if err != nil {
		return nil, err
	}
	ix, err := catalog.LoadSnapshotFile(path, newSource(), log)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", path, err)
	}
	return ix, nil
}

// parseSelector reads a positional argument as a numeric ID when it parses
// as one, otherwise as a name.
func parseSelector(arg string) catalog.Selector {
	if id, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		return catalog.Selector{ID: id}
	}
	return catalog.Selector{Name: arg}
}
