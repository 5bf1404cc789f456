package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tfinv/pkg/config"
	"tfinv/pkg/inventory"
	"tfinv/pkg/logger"
	"tfinv/pkg/provider"
)

// version is set at build time via -ldflags="-X main.version=<tag>".
var version = "dev"

var (
	listFlag  bool
	graphFlag bool
	varsFlag  bool
	hostFlag  string
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "tfinv [flags] CONFIG",
	Short: "Build an Ansible inventory from Terraform state",
	Long: `tfinv reads an inventory source config, inspects the Terraform state of the
configured project paths and prints the resulting group/host inventory.

With no output flag it behaves as a dynamic inventory source (--list).`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&listFlag, "list", false, "Print the full inventory as JSON (default)")
	rootCmd.Flags().StringVar(&hostFlag, "host", "", "Print the variables of a single host as JSON")
	rootCmd.Flags().BoolVar(&graphFlag, "graph", false, "Print the inventory as a group tree")
	rootCmd.Flags().BoolVar(&varsFlag, "vars", false, "Include variables in --graph output")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Optional log file path (appended to stderr)")
}

func run(cmd *cobra.Command, args []string) error {
	cleanup, err := logger.Init(logFile)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := config.LoadConfig(args[0])
	if err != nil {
		return err
	}

	graph := inventory.NewGraph()
	if err := provider.New(nil).Parse(cfg, graph); err != nil {
		return err
	}

	switch {
	case hostFlag != "":
		vars, ok := graph.HostVars(hostFlag)
		if !ok {
			return fmt.Errorf("host %q is not in the inventory", hostFlag)
		}
		return printJSON(vars)
	case graphFlag:
		graph.Render(os.Stdout, varsFlag)
		return nil
	default:
		out, err := graph.DynamicInventory()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("tfinv {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
