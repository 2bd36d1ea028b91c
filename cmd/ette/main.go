package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/amirali/ette/config"
	"github.com/amirali/ette/editor"
	"github.com/amirali/ette/editor/keys"
	"github.com/amirali/ette/editor/syntax"
	"github.com/amirali/ette/logger"
)

func main() {
	versionFlag := flag.Bool("version", false, "print the version and exit")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("ette version %s\n", editor.Version)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: ette <filename>")
		os.Exit(1)
	}
	filename := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		// A broken config file must not lock the user out of the
		// editor; fall back to the defaults.
		fmt.Fprintf(os.Stderr, "ette: config: %v\n", err)
	}
	syntax.SetTheme(syntax.Theme{
		Comment:   cfg.Theme.Comment,
		Mlcomment: cfg.Theme.Mlcomment,
		Keyword1:  cfg.Theme.Keyword1,
		Keyword2:  cfg.Theme.Keyword2,
		String:    cfg.Theme.String,
		Number:    cfg.Theme.Number,
		Match:     cfg.Theme.Match,
		Normal:    cfg.Theme.Normal,
	})
	langs, err := config.LoadLanguages()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ette: languages: %v\n", err)
	}
	for _, lang := range langs.Languages {
		syntax.Register(lang.Syntax())
	}

	if err := logger.Init(*debugFlag || cfg.Editor.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "ette: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	e := editor.New(cfg)
	if err := e.Init(); err != nil {
		editor.Die(err)
	}
	e.SelectSyntaxHighlight(filename)
	if err := e.EnableRawMode(); err != nil {
		editor.Die(err)
	}
	defer e.Close()

	defer func() {
		if r := recover(); r != nil {
			e.Close()
			logger.Errorw("panic", "err", r, "stack", string(debug.Stack()))
			logger.Sync()
			os.Exit(1)
		}
	}()

	if err := e.HandleEncryption(filename, nil); err != nil {
		if errors.Is(err, editor.ErrQuitEditor) {
			return
		}
		e.Close()
		editor.Die(err)
	}
	if err := e.Open(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.Close()
		editor.Die(err)
	}
	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	for {
		e.RefreshScreen()
		if err := e.ProcessKeyPress(keys.KeyNull); err != nil {
			if errors.Is(err, editor.ErrQuitEditor) {
				return
			}
			e.Close()
			editor.Die(err)
		}
	}
}
