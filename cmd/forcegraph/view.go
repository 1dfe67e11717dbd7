package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/audio"
	"github.com/lixenwraith/forcegraph/config"
	"github.com/lixenwraith/forcegraph/graphio"
	"github.com/lixenwraith/forcegraph/input"
	"github.com/lixenwraith/forcegraph/session"
)

var (
	viewKeymap string
	viewFreeze bool
	viewAudio  bool
	viewWatch  bool
	viewLabels bool
	viewFPS    int
)

var viewCmd = &cobra.Command{
	Use:   "view <graph.json>",
	Short: "Open the interactive viewer",
	Long: `Open the interactive viewer.

Keys:
  drag     move a node          wheel     zoom at the pointer
  c        collision            l         labels
  f        freeze               w         wiggle
  m        mute                 r         fit to screen
  + -      zoom                 arrows    pan
  s        save snapshot        q, Esc    quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	f := viewCmd.Flags()
	f.StringVarP(&viewKeymap, "keymap", "k", "", "TOML keymap overriding the default bindings")
	f.BoolVar(&viewFreeze, "freeze", false, "Start with forces suspended")
	f.BoolVar(&viewAudio, "audio", false, "Play sound cues")
	f.BoolVarP(&viewWatch, "watch", "w", false, "Reload the graph when the file changes")
	f.BoolVar(&viewLabels, "labels", false, "Show node labels")
	f.IntVar(&viewFPS, "fps", 0, "Frame rate, 0 keeps the configured value")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyViewFlags(cmd, &cfg)

	keys, err := loadKeyTable(cfg.Input.Keymap)
	if err != nil {
		return err
	}

	path := args[0]
	g, err := readGraph(path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reloads <-chan graphio.Reload
	if viewWatch {
		w, err := graphio.NewWatcher(graphio.WatchConfig{Path: path})
		if err != nil {
			return err
		}
		reloads = w.Start(ctx)
	}

	var cues audio.Cues
	if cfg.Audio.Enabled {
		tc := audio.NewToneCues(cfg.Audio.Level)
		if err := tc.Initialize(); err != nil {
			log.Printf("audio: %v, continuing without sound", err)
		} else {
			cues = tc
			defer tc.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mFORCEGRAPH CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	s, err := session.New(screen, session.Options{
		Config:   cfg,
		KeyTable: keys,
		Cues:     cues,
		Reloads:  reloads,
		Source:   filepath.Base(path),
	})
	if err != nil {
		return err
	}
	if err := s.Load(g); err != nil {
		return err
	}
	return s.Run(ctx)
}

func applyViewFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("keymap") {
		cfg.Input.Keymap = viewKeymap
	}
	if f.Changed("freeze") {
		// --freeze=false also relaxes graphs that arrive with positions
		cfg.Physics.Freeze = viewFreeze
		cfg.Physics.FreezePlaced = viewFreeze
	}
	if f.Changed("audio") {
		cfg.Audio.Enabled = viewAudio
	}
	if f.Changed("labels") {
		cfg.Style.ShowLabels = viewLabels
	}
	if viewFPS > 0 {
		cfg.View.FPS = viewFPS
	}
	*cfg = cfg.Clamp()
}

// loadKeyTable merges an optional keymap file over the default bindings
func loadKeyTable(path string) (*input.KeyTable, error) {
	if path == "" {
		return input.DefaultKeyTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	log.Printf("keymap: loaded %s", path)
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
