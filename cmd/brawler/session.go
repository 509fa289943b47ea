package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/audio"
	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/events"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/games/snake"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

// Game flags shared by play and menu.
var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagMute       bool
)

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config when it changes on disk")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

// localSession holds everything a local play session wires together.
type localSession struct {
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
	bus     *events.Bus
	sound   *audio.SoundManager
	watcher *config.Watcher
	safe    bool
	cancel  context.CancelFunc
}

// newLogger returns a logger writing to path, or a silent one so the
// alt screen stays clean.
func newLogger(path string) (*log.Logger, *os.File, error) {
	if path == "" {
		return log.New(io.Discard), nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "brawler",
	}), f, nil
}

// startLocalSession applies the game flags and starts the event
// subscribers. The caller must call close.
func startLocalSession() (*localSession, error) {
	logger, logFile, err := newLogger(flagLogFile)
	if err != nil {
		return nil, err
	}

	s := &localSession{logger: logger, logFile: logFile}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			s.close()
			return nil, err
		}
		brawler.SetDifficultyPreset(preset)
		snake.SetDifficultyPreset(preset)
	}
	brawler.SetConfigPath(flagConfig)
	snake.SetConfigPath(flagConfig)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
	} else {
		s.store = store
		safe, err := store.BeginSession()
		if err != nil {
			logger.Warn("could not record session start", "error", err)
		}
		if safe {
			fmt.Fprintln(os.Stderr, "Previous sessions did not exit cleanly, starting in safe mode (no sound, no colors).")
			logger.Warn("safe mode enabled")
		}
		s.safe = safe
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.bus = events.NewBus()
	brawler.SetPublisher(s.bus)
	brawler.SetLogger(logger)

	if !flagMute && !s.safe {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		} else {
			s.sound = sm
			go sm.Listen(ctx, s.bus.Subscribe(64))
		}
	}

	if flagWatch && flagConfig != "" {
		s.watchConfig(ctx)
	}

	return s, nil
}

// watchConfig reloads the brawler tuning whenever the config file changes.
// The directory is watched so editors that replace the file are seen.
func (s *localSession) watchConfig(ctx context.Context) {
	w, err := config.NewWatcher(filepath.Dir(flagConfig))
	if err != nil {
		s.logger.Warn("cannot watch config", "path", flagConfig, "error", err)
		return
	}
	s.watcher = w
	target := filepath.Clean(flagConfig)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(path) != target {
					continue
				}
				s.logger.Info("config changed, reloading on next visit to the menu", "path", path)
				brawler.NotifyConfigChanged()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("config watcher error", "error", err)
			}
		}
	}()
}

func (s *localSession) close() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.watcher != nil {
		s.watcher.Close() //nolint:errcheck // shutting down
	}
	if s.sound != nil {
		s.sound.Cleanup()
	}
	if s.bus != nil {
		brawler.SetPublisher(nil)
		s.bus.Close()
	}
	if s.store != nil {
		if err := s.store.EndSession(); err != nil {
			s.logger.Warn("could not record session end", "error", err)
		}
		s.store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}
