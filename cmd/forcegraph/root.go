package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/config"
	"github.com/lixenwraith/forcegraph/graphio"
)

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	infoStyle  = color.New(color.FgCyan)
	goodStyle  = color.New(color.FgGreen)
	dimStyle   = color.New(color.FgHiBlack)
)

var (
	configPath string
	debugLog   bool
	logFile    *os.File
)

var rootCmd = &cobra.Command{
	Use:   "forcegraph",
	Short: "Force-directed graph layout in the terminal",
	Long: `forcegraph reads a networkx node-link JSON file, runs a force-directed layout
and draws it with braille characters. Nodes can be dragged with the mouse.

Examples:
  forcegraph view graph.json             # Interactive viewer
  forcegraph view graph.json --watch     # Reload when the file changes
  forcegraph layout graph.json -o out.json
  forcegraph layout graph.json --format yaml --stats`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logFile = setupLogging(debugLog)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "forcegraph %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "TOML config file")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write a debug log to "+logDir+"/"+logFileName)
	rootCmd.AddCommand(viewCmd, layoutCmd, versionCmd)
}

// loadConfig reads the config file; the default location may be absent, an explicit one may not
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(configPath, optional)
	if err != nil {
		return cfg, err
	}
	log.Printf("config: loaded %s", configPath)
	return cfg, nil
}

func readGraph(path string) (*graphio.Graph, error) {
	g, err := graphio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("graph: %s has %d nodes, %d links", path, len(g.Nodes), len(g.Links))
	return g, nil
}
