package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/serial"
)

func newSetupCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "setup <pk-out> <msk-out> <attr>...",
		Short: "Generate a fresh public key and master secret for a universe of attributes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkOut, mskOut, attrs := args[0], args[1], args[2:]

			pk, msk, err := abe.Setup(attrs)
			if err != nil {
				return err
			}

			pkJSON, err := serial.MarshalPublicKeyJSON(pk)
			if err != nil {
				return err
			}
			mskJSON, err := serial.MarshalMasterSecretJSON(msk)
			if err != nil {
				return err
			}
			if err := os.WriteFile(pkOut, pkJSON, 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(mskOut, mskJSON, 0o600); err != nil {
				return err
			}

			logger.Info("setup complete", "attributes", len(attrs), "pk", pkOut, "msk", mskOut)
			return nil
		},
	}
}
