// Package main provides the fable terminal client: it loads game content
// and plays a single local session in a full-screen TUI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fablecore/fable/internal/config"
	"github.com/fablecore/fable/internal/game/hints"
	"github.com/fablecore/fable/internal/game/session"
	"github.com/fablecore/fable/internal/game/vocab"
	"github.com/fablecore/fable/internal/game/world"
	"github.com/fablecore/fable/internal/scripting"
	"github.com/fablecore/fable/internal/tui"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	worldFile := flag.String("world", "", "world YAML file; overrides the configured one")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *worldFile != "" {
		cfg.Game.WorldFile = *worldFile
	}

	// The alternate screen owns the terminal, so the client stays quiet
	// unless something fails.
	logger := zap.NewNop()

	def, err := world.LoadFile(cfg.Game.WorldFile)
	if err != nil {
		log.Fatalf("loading world: %v", err)
	}

	var book *hints.Book
	if cfg.Game.HintsFile != "" {
		book, err = hints.LoadFile(cfg.Game.HintsFile)
		if err != nil {
			log.Fatalf("loading hints: %v", err)
		}
	}

	rt, err := session.NewRuntime(session.RuntimeConfig{
		Definition: def,
		Hints:      book,
		SkipIntro:  cfg.Game.SkipIntro,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("creating runtime: %v", err)
	}

	if cfg.Game.ScriptDir != "" {
		scriptMgr := scripting.NewManager(logger)
		if err := scriptMgr.LoadDir(cfg.Game.ScriptDir, cfg.Game.ScriptInstructionLimit); err != nil {
			log.Fatalf("loading command scripts: %v", err)
		}
		defer scriptMgr.Close()
		rt.RegisterCommand(scripting.NewCommandHandler(scriptMgr), vocab.CoreVerbs...)
	}

	if err := tui.Run(rt, uuid.NewString()); err != nil {
		fmt.Fprintf(os.Stderr, "fable: %v\n", err)
		os.Exit(1)
	}
}
