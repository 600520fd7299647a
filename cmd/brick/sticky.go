package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStickyCmd(s *session) *cobra.Command {
	var (
		offset int
		draw   bool
	)

	cmd := &cobra.Command{
		Use:   "sticky FILE",
		Short: "Lay out a tree and run one sticky footer pass at a scroll offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, r, err := s.load(args[0])
			if err != nil {
				return err
			}

			sc := newScene(tree, r, s.collection(), s.cfg.Viewport)
			f := sc.frameAt(offset)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "viewport %+v content %dx%d\n", f.bounds, sc.layout.ContentSize().Width, sc.layout.ContentSize().Height)
			if !sc.inset.IsZero() {
				fmt.Fprintf(out, "content inset %+v\n", sc.inset)
			}
			if len(f.updates) == 0 {
				fmt.Fprintln(out, dimStyle.Render("no sticky items moved"))
			} else {
				t := newTable("INDEX PATH", "BRICK", "FROM", "TO", "STACKING")
				for _, u := range f.updates {
					t.Row(
						u.Attributes.IndexPath.String(),
						u.Attributes.Identifier,
						fmt.Sprintf("y=%d", u.OldFrame.Y),
						fmt.Sprintf("y=%d", u.Attributes.Frame.Y),
						fmt.Sprintf("%t", u.Stacking),
					)
				}
				fmt.Fprintln(out, t.String())
			}

			if !f.region.IsZero() {
				fmt.Fprintf(out, "sticky region y=%d..%d\n", f.region.Y, f.region.Bottom())
			}
			if f.result.IndicatorChanged {
				fmt.Fprintf(out, "scroll indicator inset bottom: %d\n", f.result.ScrollIndicatorInset.Bottom)
			}
			if draw {
				fmt.Fprintln(out, sc.render(f))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "vertical scroll offset of the viewport")
	cmd.Flags().BoolVar(&draw, "draw", false, "also draw the viewport")
	return cmd
}
