// Command bindery opens a file in a terminal editor bound to a host
// document model, demonstrating the binding layer end to end: edits
// flow through the change bridge in both directions while the layout
// engine tracks the terminal size.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/odvcencio/bindery/pkg/binding"
	"github.com/odvcencio/bindery/pkg/document"
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/embedded/termedit"
	"github.com/odvcencio/bindery/pkg/langmap"
	"github.com/odvcencio/bindery/pkg/logging"
	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/surface/tcellsurf"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		filePath    = flag.String("file", "", "file to edit (empty starts a scratch buffer)")
		mimeType    = flag.String("mime", "", "document MIME type (default derived or text/plain)")
		langmapPath = flag.String("langmap", "", "YAML language table overriding the built-in defaults")
		logPath     = flag.String("log", "", "write JSONL event logs to this file")
		wordWrap    = flag.Bool("wrap", false, "enable soft wrapping")
		lineNumbers = flag.Bool("numbers", true, "show the line-number gutter")
		readOnly    = flag.Bool("readonly", false, "open read-only")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("bindery %s (%s, built %s)\n", version, commit, buildDate)
		return
	}

	if err := run(*filePath, *mimeType, *langmapPath, *logPath, *wordWrap, *lineNumbers, *readOnly); err != nil {
		fmt.Fprintln(os.Stderr, "bindery:", err)
		os.Exit(1)
	}
}

func run(filePath, mimeType, langmapPath, logPath string, wordWrap, lineNumbers, readOnly bool) error {
	var text string
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		text = string(data)
	}

	languages := langmap.Default()
	if langmapPath != "" {
		var err error
		if languages, err = langmap.Load(langmapPath); err != nil {
			return err
		}
	}

	log := logging.Nop()
	if logPath != "" {
		sink, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer sink.Close()
		log = logging.NewLogger(sink)
		log.SetMinLevel(logging.LevelDebug)
	}

	model := document.NewModel(text, mimeType)

	surf, err := tcellsurf.New()
	if err != nil {
		return err
	}
	if err := surf.Init(); err != nil {
		return err
	}
	defer surf.Fini()

	width, height := surf.Size()
	container := surface.NewContainer()
	container.Attach(surf)
	container.SetBounds(surface.Rect{Width: width, Height: height})

	var editor *termedit.Editor
	factory := func(c *surface.Container, opts embedded.Options) (embedded.Component, error) {
		e, err := termedit.New(c, opts)
		editor = e
		return e, err
	}

	adapter, err := binding.New(model, factory, container, binding.Options{
		Languages:   languages,
		Logger:      log,
		LineNumbers: &lineNumbers,
		WordWrap:    &wordWrap,
		ReadOnly:    &readOnly,
	})
	if err != nil {
		return err
	}
	defer adapter.Dispose()

	adapter.Focus()

	// Ctrl+S writes back to disk, Ctrl+Q quits.
	quit := false
	adapter.AddKeydownHandler(func(ev *surface.KeyEvent) bool {
		if !ev.Ctrl || ev.Key != surface.KeyRune {
			return false
		}
		switch ev.Rune {
		case 'q':
			quit = true
			return true
		case 's':
			if filePath != "" {
				if err := os.WriteFile(filePath, []byte(model.Text()), 0o644); err != nil {
					log.Error(logging.CategoryLifecycle, "save_failed", err.Error(), nil)
				}
			}
			return true
		}
		return false
	})

	editor.Render()
	surf.Show()

	for !quit {
		switch ev := surf.PollEvent().(type) {
		case nil:
			return nil
		case *surface.KeyEvent:
			editor.HandleKey(ev)
		case surface.ResizeEvent:
			container.SetBounds(surface.Rect{Width: ev.Width, Height: ev.Height})
			adapter.Resize()
			editor.Render()
		}
		surf.Show()
	}
	return nil
}
