package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Jack-the-Pro101/manderrow/cmd"
	"github.com/Jack-the-Pro101/manderrow/pkg/install"
	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
	"github.com/Jack-the-Pro101/manderrow/pkg/manderrow"
	"github.com/Jack-the-Pro101/manderrow/pkg/settings"
)

func installMain(ctx context.Context, command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errors.New("usage: manderrow-installer install <url> <target>")
	}
	url, target := arguments[0], arguments[1]

	cfg, err := settings.Load()
	if err != nil {
		return errors.Wrap(err, "unable to load settings")
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		return err
	}
	manderrow.SetProductID(cfg.ProductID)

	statusLinePrinter := &cmd.StatusLinePrinter{}
	statusLinePrinter.Print(fmt.Sprintf("Installing %s to %s...", url, target))

	staged, err := install.Install(ctx, url, installConfiguration.digest, target, cfg, logging.RootLogger)
	statusLinePrinter.Clear()
	if err != nil {
		return errors.Wrap(err, "install failed")
	}
	_ = staged

	fmt.Println("Install complete:", target)
	return nil
}

var installCommand = &cobra.Command{
	Use:   "install <url> <target>",
	Short: "Installs (or updates) a package at the specified target directory",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(installMain),
}

var installConfiguration struct {
	help bool
	// digest is the expected hex-encoded Blake3 digest of the archive at
	// url. When non-empty, the archive is served from (and populates) the
	// content-addressed cache; when empty, it is fetched once and never
	// cached.
	digest string
}

func init() {
	flags := installCommand.Flags()
	flags.BoolVarP(&installConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&installConfiguration.digest, "digest", "", "Expected hex-encoded Blake3 digest of the archive")
}
