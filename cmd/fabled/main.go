// Package main provides the fable server binary: it loads game content and
// serves play sessions over a TCP line protocol.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/fablecore/fable/internal/config"
	"github.com/fablecore/fable/internal/game/hints"
	"github.com/fablecore/fable/internal/game/session"
	"github.com/fablecore/fable/internal/game/vocab"
	"github.com/fablecore/fable/internal/game/world"
	"github.com/fablecore/fable/internal/observability"
	"github.com/fablecore/fable/internal/scripting"
	"github.com/fablecore/fable/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	// Load world
	worldStart := time.Now()
	def, err := world.LoadFile(cfg.Game.WorldFile)
	if err != nil {
		logger.Fatal("loading world", zap.Error(err))
	}
	logger.Info("world loaded",
		zap.String("file", cfg.Game.WorldFile),
		zap.Int("locations", def.LocationCount()),
		zap.Duration("elapsed", time.Since(worldStart)),
	)

	// Load hint book
	var book *hints.Book
	if cfg.Game.HintsFile != "" {
		book, err = hints.LoadFile(cfg.Game.HintsFile)
		if err != nil {
			logger.Fatal("loading hints", zap.Error(err))
		}
		logger.Info("hints loaded", zap.String("file", cfg.Game.HintsFile))
	}

	rt, err := session.NewRuntime(session.RuntimeConfig{
		Definition: def,
		Hints:      book,
		SkipIntro:  cfg.Game.SkipIntro,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("creating runtime", zap.Error(err))
	}

	// Initialise scripting engine. Scripts overlay the core verbs and
	// fall through to the built-in handlers when they decline.
	if cfg.Game.ScriptDir != "" {
		scriptStart := time.Now()
		scriptMgr := scripting.NewManager(logger)
		if err := scriptMgr.LoadDir(cfg.Game.ScriptDir, cfg.Game.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading command scripts",
				zap.String("dir", cfg.Game.ScriptDir), zap.Error(err))
		}
		defer scriptMgr.Close()
		rt.RegisterCommand(scripting.NewCommandHandler(scriptMgr), vocab.CoreVerbs...)
		logger.Info("command scripts loaded",
			zap.String("dir", cfg.Game.ScriptDir),
			zap.Duration("elapsed", time.Since(scriptStart)),
		)
	}

	acceptor, err := server.NewAcceptor(cfg.Server, rt, logger)
	if err != nil {
		logger.Fatal("creating acceptor", zap.Error(err))
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("tcp", acceptor)

	logger.Info("fable server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("addr", cfg.Server.Addr()),
		zap.String("wire", cfg.Server.Wire),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
