package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/flux"
	"github.com/jask/flux/fluxtea"
	"github.com/jask/flux/internal/config"
	"github.com/jask/flux/internal/facts"
	"github.com/jask/flux/internal/snapshot"
	"github.com/jask/flux/internal/tally/app"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	snapshots, err := snapshot.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open snapshots: %v", err)
	}
	defer snapshots.Close()

	initial := app.State{}
	if payload, err := snapshots.Latest(ctx); err == nil {
		if restored, err := app.Restore(payload); err == nil {
			initial = restored
		}
	} else if !errors.Is(err, snapshot.ErrNoSnapshot) {
		log.Fatalf("load snapshot: %v", err)
	}

	deps := app.Deps{
		Facts:         facts.NewClient(cfg.Facts.BaseURL, cfg.Facts.Timeout),
		TickInterval:  cfg.UI.TickInterval,
		Snapshots:     snapshots,
		AutosaveDelay: cfg.UI.TickInterval,
	}
	store := flux.New(initial, app.NewReducer(deps))
	defer store.Close()

	styles := app.NewStyles(lipgloss.Color(cfg.UI.AccentColor))
	model := fluxtea.Model[app.State, app.Action]{
		Store:      store,
		Translate:  func(msg tea.Msg) (app.Action, bool) { return app.Translate(store.State(), msg) },
		Render:     func(s app.State) string { return app.View(s, styles) },
		ShouldQuit: func(s app.State) bool { return s.Quitting },
	}

	if err := fluxtea.Run(model, tea.WithAltScreen()); err != nil {
		log.Fatalf("run: %v", err)
	}

	// Final save: the debounced autosave may have been superseded by the
	// actions that quit the app.
	payload, err := app.Marshal(store.State())
	if err != nil {
		log.Fatalf("marshal state: %v", err)
	}
	if _, err := snapshots.Save(ctx, payload); err != nil {
		log.Fatalf("save state: %v", err)
	}
	if err := snapshots.Prune(ctx, 10); err != nil {
		log.Fatalf("prune snapshots: %v", err)
	}
}
