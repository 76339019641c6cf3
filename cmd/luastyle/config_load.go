package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgxo/luastyle/internal/config"
	"github.com/dgxo/luastyle/internal/driver"
	"github.com/dgxo/luastyle/internal/rules"
)

// loadConfig resolves the configuration for a run: the --config flag wins,
// otherwise the search walks up from the first target path.
func loadConfig(cmd *cobra.Command, targets []string) (*config.Config, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}

	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Discover(configSearchStart(targets))
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckRuleNames(rules.DefaultRegistry().Names()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configSearchStart(targets []string) string {
	if len(targets) == 0 {
		wd, _ := os.Getwd()
		return wd
	}
	start := targets[0]
	if st, err := os.Stat(start); err == nil && !st.IsDir() {
		start = filepath.Dir(start)
	}
	return start
}

// driverOptions assembles driver.Options from the persistent flags.
func driverOptions(cmd *cobra.Command, cfg *config.Config, noCache bool) (driver.Options, error) {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}

	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		CacheWarn:      os.Stderr,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("luastyle")
		if err != nil {
			fmt.Fprintf(os.Stderr, "luastyle: disk cache unavailable: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}
