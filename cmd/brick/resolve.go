package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	brick "github.com/grindlemire/go-brick"
)

func newResolveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE SECTION ITEM",
		Short: "Resolve an index path to its owning brick and local index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("section %q: %w", args[1], err)
			}
			item, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("item %q: %w", args[2], err)
			}

			_, r, err := s.load(args[0])
			if err != nil {
				return err
			}

			ip := brick.IndexPath{Section: section, Item: item}
			b, index, err := r.BrickAndIndex(ip, s.collection())
			if err != nil {
				return fmt.Errorf("resolve %v: %w", ip, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%v %s (%s) index %d\n", ip, b.Identifier(), b.Kind(), index)
			if b.IsSection() && ip.Section != 0 {
				if owned, ok := ownedSection(r, b, s.collection()); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "  mirrors section %d item %d\n", owned, index)
				}
			}
			return nil
		},
	}
}

// ownedSection returns the nested section number whose owner is b.
func ownedSection(r *brick.Resolver, b *brick.Brick, c brick.CollectionInfo) (int, bool) {
	for section := 2; section < r.NumberOfSections(c); section++ {
		if owner, _ := r.SectionBrick(section, c); owner == b {
			return section, true
		}
	}
	return 0, false
}
