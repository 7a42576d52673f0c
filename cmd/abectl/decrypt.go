package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/serial"
)

func newDecryptCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <client-key-in> <ciphertext-in> <mediated-value-in> <output>",
		Short: "Complete decryption given the client's key share and the mediator's value",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientKeyIn, ctIn, valueIn, output := args[0], args[1], args[2], args[3]

			skRaw, err := os.ReadFile(clientKeyIn)
			if err != nil {
				return err
			}
			sk, err := serial.UnmarshalClientKeyJSON(skRaw)
			if err != nil {
				return err
			}

			ctRaw, err := os.ReadFile(ctIn)
			if err != nil {
				return err
			}
			ct, err := serial.UnmarshalCiphertextJSON(ctRaw)
			if err != nil {
				return err
			}

			valueRaw, err := os.ReadFile(valueIn)
			if err != nil {
				return err
			}
			mediatorValue, err := serial.UnmarshalMediatorValueJSON(valueRaw)
			if err != nil {
				return err
			}

			result, err := abe.UserDecrypt(ct, sk, mediatorValue)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, result.Message, 0o600); err != nil {
				return err
			}

			logger.Info("decrypt complete", "output", output, "bytes", len(result.Message))
			return nil
		},
	}
}
