package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/catalog"
	"github.com/framegrace/pudding/internal/config"
	"github.com/framegrace/pudding/internal/editor"
	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/runtime"
	"github.com/framegrace/pudding/internal/template"
)

const tickInterval = 30 * time.Millisecond

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pudding: "+err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	top := flag.NewFlagSet("pudding", flag.ContinueOnError)
	logPath := top.String("log", "", "diagnostic log file (default <config dir>/pudding.log)")
	if err := top.Parse(args); err != nil {
		return err
	}
	if err := setupLogging(*logPath); err != nil {
		return err
	}

	rest := top.Args()
	if len(rest) == 0 {
		return runTemplate("default")
	}

	switch rest[0] {
	case "run":
		fs := flag.NewFlagSet("run", flag.ContinueOnError)
		name := fs.String("template", "default", "template to run")
		if err := fs.Parse(rest[1:]); err != nil {
			return err
		}
		return runTemplate(*name)

	case "template":
		if len(rest) < 2 {
			return fmt.Errorf("template: expected a subcommand (edit, apply, list)")
		}
		switch rest[1] {
		case "edit":
			fs := flag.NewFlagSet("template edit", flag.ContinueOnError)
			name := fs.String("name", "", "template to edit")
			if err := fs.Parse(rest[2:]); err != nil {
				return err
			}
			if *name == "" {
				return fmt.Errorf("template edit: --name is required")
			}
			return editTemplate(*name)

		case "apply":
			fs := flag.NewFlagSet("template apply", flag.ContinueOnError)
			name := fs.String("name", "", "template to apply")
			if err := fs.Parse(rest[2:]); err != nil {
				return err
			}
			if *name == "" {
				return fmt.Errorf("template apply: --name is required")
			}
			return runTemplate(*name)

		case "list":
			fs := flag.NewFlagSet("template list", flag.ContinueOnError)
			if err := fs.Parse(rest[2:]); err != nil {
				return err
			}
			return listTemplates()

		default:
			return fmt.Errorf("template: unknown subcommand %q", rest[1])
		}

	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

// setupLogging directs the standard logger at path (or the config
// directory's default pudding.log), never at stdout/stderr: once the
// runtime enters raw/alternate-screen mode, writes to either would
// corrupt the display.
func setupLogging(path string) error {
	if path == "" {
		root, err := config.TemplatesDir()
		if err != nil {
			return err
		}
		path = filepath.Join(filepath.Dir(root), "pudding.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

func loadConfigAndTemplate(name string) (*config.Config, *layout.Template, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	t, err := template.LoadTemplate(name, cfg.DefaultCommand)
	if err != nil {
		return nil, nil, fmt.Errorf("load template %q: %w", name, err)
	}
	return cfg, t, nil
}

func newScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// runTemplate spawns every leaf of the named template and drives the live
// multiplexer until the quit action fires.
func runTemplate(name string) error {
	cfg, t, err := loadConfigAndTemplate(name)
	if err != nil {
		return err
	}

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	app, err := runtime.New(screen, t, cfg)
	if err != nil {
		return fmt.Errorf("spawn %q: %w", name, err)
	}
	defer app.Close()

	events := pumpEvents(screen)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	app.Draw()
	for !app.Done() {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				app.HandleKey(e)
			case *tcell.EventResize:
				screen.Sync()
				app.ResizeAll()
			}
		case <-ticker.C:
		}
		app.Draw()
	}
	return nil
}

// editTemplate opens the standalone layout editor on the named template,
// saving back to the templates directory on 's' and quitting on 'q'.
func editTemplate(name string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	t, err := template.LoadTemplate(name, cfg.DefaultCommand)
	if err != nil {
		return fmt.Errorf("load template %q: %w", name, err)
	}

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ed := editor.New(screen, t, cfg.DefaultCommand)
	events := pumpEvents(screen)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	ed.Draw()
	for !ed.Done() {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				ed.HandleKey(e)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
		}
		ed.Draw()
	}
	return nil
}

// pumpEvents relays screen.PollEvent onto a channel so the caller's event
// loop can also select on a redraw ticker.
func pumpEvents(screen tcell.Screen) <-chan tcell.Event {
	out := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			out <- ev
		}
	}()
	return out
}

// listTemplates prints every known template and saved state from the
// catalog, reindexing from disk first so a stale or missing database
// never hides an entry that's actually present.
func listTemplates() error {
	return listTemplatesTo(os.Stdout)
}

func listTemplatesTo(w io.Writer) error {
	templatesDir, err := config.TemplatesDir()
	if err != nil {
		return err
	}
	statesDir, err := config.StatesDir()
	if err != nil {
		return err
	}

	dbPath := filepath.Join(filepath.Dir(templatesDir), "catalog.db")
	cat, err := catalog.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	if err := cat.Reindex(templatesDir, "template"); err != nil {
		return fmt.Errorf("reindex templates: %w", err)
	}
	if err := cat.Reindex(statesDir, "state"); err != nil {
		return fmt.Errorf("reindex states: %w", err)
	}

	for _, kind := range []string{"template", "state"} {
		entries, err := cat.List(kind)
		if err != nil {
			return fmt.Errorf("list %s: %w", kind, err)
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d leaves\t%s\n", e.Kind, e.Name, e.LeafCount, e.ModifiedAt.Format(time.RFC3339))
		}
	}
	return nil
}
