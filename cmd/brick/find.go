package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	brick "github.com/grindlemire/go-brick"
)

func newFindCmd(s *session) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "find FILE IDENTIFIER",
		Short: "List the index paths of every item owned by an identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, r, err := s.load(args[0])
			if err != nil {
				return err
			}
			identifier := args[1]
			c := s.collection()

			var paths []brick.IndexPath
			if cmd.Flags().Changed("index") {
				paths = r.IndexPathsForIdentifierAt(identifier, index, c)
			} else {
				paths = r.IndexPathsForIdentifier(identifier, c)
			}

			if len(paths) == 0 {
				if !slices.Contains(tree.Identifiers(), identifier) {
					if near := suggest(identifier, tree.Identifiers()); len(near) > 0 {
						fmt.Fprintf(cmd.ErrOrStderr(), "did you mean %s?\n", strings.Join(near, ", "))
					}
				}
				return fmt.Errorf("no items for %q in %v", identifier, c)
			}

			for _, ip := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), ip)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "only match items at this offset within the brick")
	return cmd
}

// suggest returns the candidates within editing distance of identifier,
// closest first.
func suggest(identifier string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	limit := max(2, len(identifier)/3)
	var near []scored
	for _, name := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(identifier), strings.ToLower(name))
		if d <= limit {
			near = append(near, scored{name: name, dist: d})
		}
	}
	slices.SortStableFunc(near, func(a, b scored) int {
		return cmp.Compare(a.dist, b.dist)
	})

	out := make([]string, 0, len(near))
	for _, n := range near {
		out = append(out, n.name)
	}
	return out
}
