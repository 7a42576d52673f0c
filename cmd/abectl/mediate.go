package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/serial"
)

func newMediateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "mediate <mediator-key-in> <ciphertext-in> <mediated-value-out>",
		Short: "Run the mediator's half of decryption, producing the value the client needs to finish",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediatorKeyIn, ctIn, valueOut := args[0], args[1], args[2]

			mkRaw, err := os.ReadFile(mediatorKeyIn)
			if err != nil {
				return err
			}
			mk, err := serial.UnmarshalMediatorKeyJSON(mkRaw)
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

			value, err := abe.MediatorDecrypt(ct, mk)
			if err != nil {
				return err
			}

			valueJSON, err := serial.MarshalMediatorValueJSON(value)
			if err != nil {
				return err
			}
			if err := os.WriteFile(valueOut, valueJSON, 0o600); err != nil {
				return err
			}

			logger.Info("mediator-decrypt complete", "output", valueOut)
			return nil
		},
	}
}
