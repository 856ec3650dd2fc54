// ABOUTME: Root Cobra command for trainer CLI.
// ABOUTME: Opens config, store, and service via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainer/internal/api"
	"github.com/harperreed/trainer/internal/config"
	"github.com/harperreed/trainer/internal/offline"
	"github.com/harperreed/trainer/internal/storage"
)

var (
	cfg     *config.Config
	store   *storage.DB
	client  *api.Client
	service *offline.Service
	log     = logrus.New()

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Offline-first workout tracker",
	Long: `Trainer is a CLI client for the workout planner API that works
with or without a network connection.

Reads prefer the server and fall back to the local cache. A logged workout
is always written to the local database first; if the server is unreachable
the write is queued and delivered on the next reconnect or explicit sync.

QUICK START:

  $ trainer login --server https://planner.example.com --token TOKEN
  $ trainer seed                        # Warm the local cache
  $ trainer plan                        # Show your active plan
  $ trainer log 3 --name tuesday --duration 30 --exercise 7:3x10
  $ trainer history                     # ✓ synced, ⏳ pending
  $ trainer sync                        # Flush pending writes now
  $ trainer sync watch                  # Flush automatically on reconnect

DATA STORAGE:

  The local cache and write-ahead queue live in a SQLite database at
  ~/.local/share/trainer/trainer.db. Configuration is read from
  ~/.config/trainer/config.json; TRAINER_SERVER and TRAINER_TOKEN
  override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}

		// Login only writes config; no store or server needed yet.
		if cmd.Name() == "login" || cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if !cfg.IsConfigured() {
			return fmt.Errorf("no server configured - run 'trainer login' first")
		}

		store, err = storage.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("open local store: %w", err)
		}

		client = api.New(cfg.Server, cfg.Token, log)
		service = offline.New(store, client, offline.NewOnDemand(client), log)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}
