package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Jack-the-Pro101/manderrow/cmd"
	"github.com/Jack-the-Pro101/manderrow/pkg/install"
)

func scanMain(_ context.Context, command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("usage: manderrow-installer scan <target>")
	}
	target := arguments[0]

	changes, err := install.Scan(target)
	if err != nil {
		return errors.Wrap(err, "scan failed")
	}

	if len(changes) == 0 {
		fmt.Println("No changes detected.")
		return nil
	}
	for _, change := range changes {
		fmt.Printf("%-20s %s\n", change.Status, change.Path)
	}
	return nil
}

var scanCommand = &cobra.Command{
	Use:   "scan <target>",
	Short: "Reports divergences between an installed target and its recorded manifest",
	Args:  cobra.ExactArgs(1),
	Run:   cmd.Mainify(scanMain),
}

var scanConfiguration struct {
	help bool
}

func init() {
	flags := scanCommand.Flags()
	flags.BoolVarP(&scanConfiguration.help, "help", "h", false, "Show help information")
}
