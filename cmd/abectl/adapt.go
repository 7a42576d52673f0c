package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/serial"
)

func newAdaptCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "adapt <pk-in> <msk-in> <pk-out> <msk-out> <new-attr>...",
		Short: "Extend a live system with new attributes without disturbing issued keys or ciphertexts",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkIn, mskIn, pkOut, mskOut, newAttrs := args[0], args[1], args[2], args[3], args[4:]

			pkRaw, err := os.ReadFile(pkIn)
			if err != nil {
				return err
			}
			pk, err := serial.UnmarshalPublicKeyJSON(pkRaw)
			if err != nil {
				return err
			}

			mskRaw, err := os.ReadFile(mskIn)
			if err != nil {
				return err
			}
			msk, err := serial.UnmarshalMasterSecretJSON(mskRaw)
			if err != nil {
				return err
			}

			adaptedPK, adaptedMSK, err := abe.Adapt(pk, msk, newAttrs)
			if err != nil {
				return err
			}

			pkJSON, err := serial.MarshalPublicKeyJSON(adaptedPK)
			if err != nil {
				return err
			}
			mskJSON, err := serial.MarshalMasterSecretJSON(adaptedMSK)
			if err != nil {
				return err
			}
			if err := os.WriteFile(pkOut, pkJSON, 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(mskOut, mskJSON, 0o600); err != nil {
				return err
			}

			logger.Info("adapt complete", "new_attributes", len(newAttrs), "pk", pkOut, "msk", mskOut)
			return nil
		},
	}
}
