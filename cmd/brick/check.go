package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-brick/internal/debug"
)

// checkResult is the outcome of validating one tree document.
type checkResult struct {
	path     string
	sections int
	items    int
	err      error
}

func newCheckCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate tree documents and report their sizes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := s.checkFiles(cmd, args)
			if err != nil {
				return err
			}

			t := newTable("FILE", "SECTIONS", "ITEMS", "STATUS")
			var failed int
			for _, res := range results {
				if res.err != nil {
					failed++
					t.Row(res.path, "-", "-", errStyle.Render(res.err.Error()))
					continue
				}
				t.Row(res.path, strconv.Itoa(res.sections), strconv.Itoa(res.items), "ok")
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			if failed > 0 {
				return fmt.Errorf("%d file(s) had errors", failed)
			}
			return nil
		},
	}
}

// checkFiles loads every document concurrently, one resolver per file.
// Results keep the order of paths.
func (s *session) checkFiles(cmd *cobra.Command, paths []string) ([]checkResult, error) {
	results := make([]checkResult, len(paths))
	c := s.collection()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := checkResult{path: path}
			_, r, err := s.load(path)
			if err != nil {
				res.err = err
			} else {
				res.sections = r.NumberOfSections(c)
				for _, n := range r.SectionCounts(c)[1:] {
					res.items += n
				}
			}
			debug.Log("check: %s sections=%d items=%d err=%v", path, res.sections, res.items, res.err)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
