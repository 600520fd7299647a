package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	brick "github.com/grindlemire/go-brick"
	"github.com/grindlemire/go-brick/internal/debug"
	"github.com/grindlemire/go-brick/internal/treefile"
)

func newWatchCmd(s *session) *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Scroll through a laid out tree with sticky footers applied",
		Long: `Scroll through a laid out tree with sticky footers applied.

Keys: up/down (or k/j) scroll, pgup/pgdown scroll a page, r reloads the
file into a fresh collection, q quits. When stdout is not a terminal a
single frame is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newWatchModel(s, args[0])
			if err != nil {
				return err
			}
			m.scrollTo(offset)

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				fmt.Fprintln(out, m.View())
				return nil
			}

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out)).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "initial scroll offset")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reloadedMsg carries a freshly loaded tree.
type reloadedMsg struct {
	tree       *treefile.Tree
	resolver   *brick.Resolver
	collection brick.CollectionInfo
	err        error
}

// watchModel is the bubbletea model behind brick watch.
type watchModel struct {
	path  string
	s     *session
	step  int
	scene *scene
	frame frame
	// generation counts reloads since start.
	generation int
	status     string
}

func newWatchModel(s *session, path string) (*watchModel, error) {
	tree, r, err := s.load(path)
	if err != nil {
		return nil, err
	}
	m := &watchModel{
		path:  path,
		s:     s,
		step:  s.cfg.Watch.Step,
		scene: newScene(tree, r, s.collection(), s.cfg.Viewport),
	}
	m.scrollTo(0)
	return m, nil
}

func (m *watchModel) Init() tea.Cmd {
	return nil
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scrollTo(m.frame.offset - m.step)
		case "down", "j":
			m.scrollTo(m.frame.offset + m.step)
		case "pgup", "b":
			m.scrollTo(m.frame.offset - m.scene.height)
		case "pgdown", " ", "f":
			m.scrollTo(m.frame.offset + m.scene.height)
		case "home", "g":
			m.scrollTo(-m.scene.inset.Top)
		case "end", "G":
			m.scrollTo(m.scene.maxOffset())
		case "r":
			return m, m.reload()
		}
	case tea.WindowSizeMsg:
		// One line is reserved for the status bar.
		m.scene.resize(msg.Width, msg.Height-1)
		m.scrollTo(m.frame.offset)
	case reloadedMsg:
		if msg.err != nil {
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.generation++
		old := m.scene
		m.scene = newScene(msg.tree, msg.resolver, msg.collection, m.s.cfg.Viewport)
		m.scene.resize(old.width, old.height)
		m.status = fmt.Sprintf("reloaded as %v", msg.collection)
		m.scrollTo(m.frame.offset)
	}
	return m, nil
}

// reload reads the file again into a collection with a fresh identifier so
// no cached answers from the previous generation are reused.
func (m *watchModel) reload() tea.Cmd {
	path := m.path
	c := brick.CollectionInfo{Index: m.scene.collection.Index, Identifier: uuid.NewString()}
	return func() tea.Msg {
		tree, r, err := m.s.load(path)
		debug.Log("watch: reload %s as %v err=%v", path, c, err)
		return reloadedMsg{tree: tree, resolver: r, collection: c, err: err}
	}
}

func (m *watchModel) scrollTo(offset int) {
	m.frame = m.scene.frameAt(m.scene.clamp(offset))
}

func (m *watchModel) View() string {
	f := m.frame
	status := fmt.Sprintf(" %s  y=%d/%d  sticky=%d  indicator=%d",
		m.path, f.offset, m.scene.maxOffset(), len(f.result.Attributes), f.result.ScrollIndicatorInset.Bottom)
	if m.status != "" {
		status += "  " + m.status
	}
	return m.scene.render(f) + "\n" + statusStyle.Render(pad(status, m.scene.width))
}
