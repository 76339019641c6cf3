package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgxo/luastyle/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter luastyle.toml",
	Long: `Init writes a commented luastyle.toml into the given directory (default:
the current directory) so the project's style settings live next to its code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		target = args[0]
		if !filepath.IsAbs(target) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		return fmt.Errorf("cannot stat %q: %w", target, err)
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	configPath := filepath.Join(target, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("already configured: %s exists", configPath)
	}

	if err := os.WriteFile(configPath, []byte(config.Starter), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	rel := configPath
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, configPath); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", rel)
	return nil
}
