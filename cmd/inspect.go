package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ZacxDev/go-html-pages/plugin"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the build mode, entry inputs and dev server rewrites",
	Run: func(cmd *cobra.Command, args []string) {
		pc, err := loadContext(cmd, "serve")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printContext(os.Stdout, pc)
	},
}

func printContext(w io.Writer, pc *plugin.Context) {
	fmt.Fprintf(w, "mode: %s\n", pc.Mode)

	fmt.Fprintln(w, "inputs:")
	inputs := pc.Inputs()
	for _, key := range inputs.Keys() {
		fmt.Fprintf(w, "  %s: %s\n", key, inputs[key])
	}

	fmt.Fprintln(w, "rewrites:")
	for _, rule := range pc.ConfigureServer() {
		fmt.Fprintf(w, "  %s -> %s\n", rule.Match, rule.Target())
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
