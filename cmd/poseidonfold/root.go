package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vocdoni/poseidonfold"
	"github.com/vocdoni/poseidonfold/schedule"
)

var (
	verbose  bool
	segments int
	split    string
)

var rootCmd = &cobra.Command{
	Use:           "poseidonfold",
	Short:         "Segmented Poseidon permutation over BN254",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every applied segment")
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(proveCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// segmentFlags registers the flags choosing how the schedule is cut.
func segmentFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&segments, "segments", "n", 3, "number of cost-balanced segments")
	cmd.Flags().StringVar(&split, "split", "", "explicit comma separated round boundaries, or \"phases\"")
}

func cutSchedule(s schedule.Schedule) ([]schedule.Segment, error) {
	switch split {
	case "":
		return s.Split(segments)
	case "phases":
		return s.Phases(), nil
	}
	var boundaries []int
	for _, part := range strings.Split(split, ",") {
		b, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "boundary %q", part)
		}
		boundaries = append(boundaries, b)
	}
	return s.SplitAt(boundaries...)
}

func parseElements(args []string) ([]fr.Element, error) {
	out := make([]fr.Element, len(args))
	for i, a := range args {
		if _, err := out[i].SetString(a); err != nil {
			return nil, errors.Wrapf(err, "element %d (%q)", i, a)
		}
	}
	return out, nil
}

// initialState parses args as a full state, or returns [0, 1, 2] when args
// is empty.
func initialState(perm *poseidonfold.Permutation, args []string) ([]fr.Element, error) {
	if len(args) == 0 {
		state := make([]fr.Element, perm.Width())
		for i := range state {
			state[i].SetUint64(uint64(i))
		}
		return state, nil
	}
	if len(args) != perm.Width() {
		return nil, errors.Wrapf(poseidonfold.ErrWidthMismatch, "got %d elements, want %d", len(args), perm.Width())
	}
	return parseElements(args)
}
