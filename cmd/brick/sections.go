package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSectionsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE",
		Short: "List every section with its bound index path and item count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := s.load(args[0])
			if err != nil {
				return err
			}
			c := s.collection()

			t := newTable("SECTION", "BOUND TO", "BRICK", "ITEMS")
			for section := range r.NumberOfSections(c) {
				bound := "-"
				if ip, ok := r.IndexPathForSection(section, c); ok {
					bound = ip.String()
				}
				owner, _ := r.SectionBrick(section, c)
				t.Row(
					strconv.Itoa(section),
					bound,
					owner.Identifier(),
					strconv.Itoa(r.NumberOfItems(section, c)),
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(c.String()))
			return nil
		},
	}
}
