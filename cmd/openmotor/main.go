// openmotor - Motor Learning Dataset submission checker

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/openmotor-dataset/openmotor/internal/cli"
	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		printError(err)
	}
	os.Exit(cli.ExitCode(err))
}

// printError reports err on stderr unless the command already reported it.
func printError(err error) {
	if shared.IsExitError(err) {
		return
	}
	cliErr := apperrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = apperrors.Wrap(err, apperrors.Runtime)
	}
	apperrors.FprintError(os.Stderr, cliErr)
}
