package main

import (
	"fmt"

	"github.com/spf13/cobra"

	brick "github.com/grindlemire/go-brick"
	"github.com/grindlemire/go-brick/internal/config"
	"github.com/grindlemire/go-brick/internal/debug"
	"github.com/grindlemire/go-brick/internal/treefile"
)

// session is the state shared by every subcommand of one invocation.
type session struct {
	configPath      string
	collectionIndex int
	collectionID    string

	cfg     config.Config
	logging bool
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "brick",
		Short:         "Inspect hierarchical brick trees",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd, args)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.configPath, "config", "", "config file (default $BRICK_CONFIG or the user config dir)")
	flags.IntVar(&s.collectionIndex, "collection-index", 0, "collection index to query")
	flags.StringVar(&s.collectionID, "collection-id", "", "collection identifier to query")

	root.AddCommand(
		newSectionsCmd(s),
		newResolveCmd(s),
		newFindCmd(s),
		newStickyCmd(s),
		newCheckCmd(s),
		newWatchCmd(s),
	)
	return root
}

// setup loads configuration, applies flag overrides, and starts logging.
func (s *session) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("collection-index") {
		cfg.Collection.Index = s.collectionIndex
	}
	if flags.Changed("collection-id") {
		cfg.Collection.Identifier = s.collectionID
	}
	s.cfg = cfg

	if cfg.Log.File != "" {
		if err := debug.Init(cfg.Log.File); err != nil {
			return fmt.Errorf("init debug log: %w", err)
		}
		s.logging = true
	}
	if err := debug.SetLevel(cfg.Log.Level); err != nil {
		return err
	}

	debug.Event().
		Str("command", cmd.Name()).
		Strs("args", args).
		Stringer("collection", cfg.Collection()).
		Msg("cmd: run")
	return nil
}

func (s *session) teardown() error {
	if !s.logging {
		return nil
	}
	s.logging = false
	return debug.Close()
}

func (s *session) collection() brick.CollectionInfo {
	return s.cfg.Collection()
}

// load reads a tree document and wraps it in a resolver.
func (s *session) load(path string) (*treefile.Tree, *brick.Resolver, error) {
	tree, err := treefile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return tree, tree.NewResolver(), nil
}
