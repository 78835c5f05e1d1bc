package main

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/spf13/cobra"

	"github.com/vocdoni/poseidonfold"
	"github.com/vocdoni/poseidonfold/iopattern"
)

var (
	hashMode    string
	hashSqueeze int
	hashMulti   bool
	hashSeed    string
)

func init() {
	hashCmd.Flags().StringVar(&hashMode, "mode", "compressed", "squeeze mode: compressed or rate")
	hashCmd.Flags().IntVar(&hashSqueeze, "squeeze", 1, "number of elements to squeeze")
	hashCmd.Flags().BoolVar(&hashMulti, "multi", false, "reduce the inputs with a Hash2 tree")
	hashCmd.Flags().StringVar(&hashSeed, "chain", "", "fold the inputs into this seed one at a time")
}

var hashCmd = &cobra.Command{
	Use:   "hash <element>...",
	Short: "Hash decimal field elements",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := parseElements(args)
		if err != nil {
			return err
		}
		switch {
		case hashMulti:
			h, err := poseidonfold.MultiHash(inputs...)
			if err != nil {
				return err
			}
			fmt.Println(h.String())
			return nil
		case hashSeed != "":
			var seed fr.Element
			if _, err := seed.SetString(hashSeed); err != nil {
				return err
			}
			h, err := poseidonfold.HashChain(seed, inputs...)
			if err != nil {
				return err
			}
			fmt.Println(h.String())
			return nil
		}

		mode, err := poseidonfold.ParseMode(hashMode)
		if err != nil {
			return err
		}
		perm, err := poseidonfold.Default()
		if err != nil {
			return err
		}
		sponge := poseidonfold.NewSponge(perm, mode)
		if err := sponge.Start(iopattern.New().Absorb(len(inputs)).Squeeze(hashSqueeze)); err != nil {
			return err
		}
		if err := sponge.Absorb(len(inputs), inputs); err != nil {
			return err
		}
		out, err := sponge.Squeeze(hashSqueeze)
		if err != nil {
			return err
		}
		if err := sponge.Finish(); err != nil {
			return err
		}
		for _, e := range out {
			fmt.Println(e.String())
		}
		return nil
	},
}
