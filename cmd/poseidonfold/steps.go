package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vocdoni/poseidonfold"
)

func init() {
	segmentFlags(stepsCmd)
}

var stepsCmd = &cobra.Command{
	Use:   "steps [state...]",
	Short: "Print the segments of the schedule and the state after each one",
	RunE: func(cmd *cobra.Command, args []string) error {
		perm, err := poseidonfold.Default()
		if err != nil {
			return err
		}
		s := perm.Schedule()
		segs, err := cutSchedule(s)
		if err != nil {
			return err
		}
		state, err := initialState(perm, args)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "step\trounds\toffset\tpartial\tcost\tstate[0]")
		for i, seg := range segs {
			if state, _, err = perm.Step(state, seg); err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t[%d, %d)\t%d\t%d\t%d\t%s\n", i, seg.Start, seg.End, seg.Offset, seg.Partial, s.Cost(seg), state[0].String())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		digest, err := perm.Digest(state)
		if err != nil {
			return err
		}
		fmt.Println("digest", digest.String())
		return nil
	},
}
