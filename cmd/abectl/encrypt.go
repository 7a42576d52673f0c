package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/policy"
	"github.com/mmsyan/mediated-kpabe/serial"
)

func newEncryptCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <policy> <pk-in> <input> <output>",
		Short: "Encrypt a payload under a public key and an access policy",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			policySrc, pkIn, input, output := args[0], args[1], args[2], args[3]

			tree, err := policy.Parse(policySrc)
			if err != nil {
				return err
			}

			pkRaw, err := os.ReadFile(pkIn)
			if err != nil {
				return err
			}
			pk, err := serial.UnmarshalPublicKeyJSON(pkRaw)
			if err != nil {
				return err
			}

			payload, err := os.ReadFile(input)
			if err != nil {
				return err
			}

			ct, err := abe.Encrypt(pk, tree, payload)
			if err != nil {
				return err
			}

			ctJSON, err := serial.MarshalCiphertextJSON(ct)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, ctJSON, 0o600); err != nil {
				return err
			}

			logger.Info("encrypt complete", "policy", policySrc, "bytes", len(payload), "output", output)
			return nil
		},
	}
}
