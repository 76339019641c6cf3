package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dgxo/luastyle/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the style rules",
	Long:  `Rules prints every style rule with its code, config key, default severity, and a short description`,
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Severity string `json:"default_severity"`
	Doc      string `json:"doc"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	all := rules.DefaultRegistry().All()
	infos := make([]ruleInfo, 0, len(all))
	for _, r := range all {
		infos = append(infos, ruleInfo{
			Code:     r.Code().ID(),
			Name:     r.Name(),
			Severity: r.DefaultSeverity().String(),
			Doc:      r.Doc(),
		})
	}

	switch format {
	case "pretty":
		codeColor := color.New(color.Bold)
		if !colorEnabled(cmd, os.Stdout) {
			codeColor.DisableColor()
		}
		for _, info := range infos {
			fmt.Fprintf(os.Stdout, "%s  %-20s %-8s %s\n",
				codeColor.Sprint(info.Code), info.Name, info.Severity, info.Doc)
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
