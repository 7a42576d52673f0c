// Command abectl is the CLI facade over the abe package: setup,
// keygen, encrypt, mediate, decrypt, and adapt. Built with
// github.com/spf13/cobra, the stack opal-lang-opal's own CLI harness
// uses, and logs progress/errors through log/slog since no logging
// library appears anywhere in the retrieved example corpus.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "abectl",
		Short:         "Mediated KP-ABE over BN254: setup, keygen, encrypt, mediate, decrypt, adapt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSetupCmd(logger),
		newKeygenCmd(logger),
		newEncryptCmd(logger),
		newMediateCmd(logger),
		newDecryptCmd(logger),
		newAdaptCmd(logger),
	)
	return root
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("abectl failed", "error", err)
		os.Exit(1)
	}
}
