package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"clipper/config"
	"clipper/episodes"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clipper",
		Short:        "Index podcast transcripts and validate clip selections",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config")

	root.AddCommand(newServeCmd(), newSelectCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transcript and clip HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			return runServer(cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.Default().Addr, "listen address")
	cmd.Flags().StringVar(&dbPath, "db", config.Default().DBPath, "sqlite database path")
	return cmd
}

func newSelectCmd() *cobra.Command {
	var (
		payloadPath string
		showID      string
		startMs     int64
		endMs       int64
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Index a transcript payload and print the selection for a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			f, err := os.Open(payloadPath)
			if err != nil {
				return fmt.Errorf("opening payload: %w", err)
			}
			defer f.Close()

			// selecting never touches the clip store
			s := episodes.NewService(nil, settingsFromConfig(cfg))
			if _, err := s.LoadEpisode(showID, f); err != nil {
				return err
			}
			sel, err := s.Select(showID, startMs, endMs)
			if err != nil {
				return err
			}
			if problem := sel.Problem(cfg.MaxClipSeconds); problem != "" {
				log.Println(problem)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sel)
		},
	}
	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "", "transcript payload JSON file")
	cmd.Flags().StringVar(&showID, "show", "", "show identifier")
	cmd.Flags().Int64Var(&startMs, "start", 0, "selection start in milliseconds")
	cmd.Flags().Int64Var(&endMs, "end", 0, "selection end in milliseconds (0 = end of show)")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}

func settingsFromConfig(cfg config.Config) episodes.Settings {
	return episodes.Settings{
		MaxClipSeconds:           cfg.MaxClipSeconds,
		MinClipSeconds:           cfg.MinClipSeconds,
		SpeakerNamesInTranscript: cfg.SpeakerNamesInTranscript,
	}
}
