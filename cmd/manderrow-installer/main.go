package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jack-the-Pro101/manderrow/cmd"
	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
	"github.com/Jack-the-Pro101/manderrow/pkg/manderrow"
	"github.com/Jack-the-Pro101/manderrow/pkg/must"
)

func rootMain(command *cobra.Command, arguments []string) {
	if rootConfiguration.version {
		fmt.Println(manderrow.Version)
		return
	}
	must.CommandHelp(command, logging.RootLogger)
}

var rootCommand = &cobra.Command{
	Use:   "manderrow-installer",
	Short: "manderrow-installer fetches, installs, and updates content-addressed packages in place.",
	Run:   rootMain,
}

var rootConfiguration struct {
	help    bool
	version bool
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		installCommand,
		scanCommand,
	)
}

func main() {
	cmd.HandleTerminalCompatibility()

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
