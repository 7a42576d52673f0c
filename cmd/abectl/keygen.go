package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/serial"
)

func newKeygenCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen <pk-in> <msk-in> <client-key-out> <mediator-key-out> <attr>...",
		Short: "Issue a key for an attribute set, split into a client half and a mediator half",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkIn, mskIn, clientOut, mediatorOut, attrs := args[0], args[1], args[2], args[3], args[4:]

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

			clientKey, mediatorKey, err := abe.KeyGen(pk, msk, attrs)
			if err != nil {
				return err
			}

			clientJSON, err := serial.MarshalClientKeyJSON(clientKey)
			if err != nil {
				return err
			}
			mediatorJSON, err := serial.MarshalMediatorKeyJSON(mediatorKey)
			if err != nil {
				return err
			}
			if err := os.WriteFile(clientOut, clientJSON, 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(mediatorOut, mediatorJSON, 0o600); err != nil {
				return err
			}

			logger.Info("keygen complete", "attributes", len(attrs), "client_key", clientOut, "mediator_key", mediatorOut)
			return nil
		},
	}
}
