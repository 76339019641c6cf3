package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dgxo/luastyle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "luastyle",
	Short: "Lua style checker and fixer",
	Long:  `luastyle checks Lua and Luau sources against a configurable style guide and can rewrite them to match`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 1000, "maximum number of diagnostics to keep per file")
	rootCmd.PersistentFlags().String("config", "", "path to luastyle.toml (default: walk up from the target)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
