package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mizuki/greenplate/api"
	"github.com/mizuki/greenplate/config"
	"github.com/mizuki/greenplate/session"
	"github.com/mizuki/greenplate/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/greenplate/config.toml)")
	listCases := flag.Bool("list", false, "list recent cases and exit")
	flag.Parse()

	path := *configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		// If using default path and file doesn't exist, use empty config
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = config.Config{}
		} else {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	client := api.NewClient(cfg.ResolvedBaseURL(), cfg.ResolvedToken())

	if *listCases {
		cases, err := client.ListCases(context.Background(), 50)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing cases: %v\n", err)
			os.Exit(1)
		}
		for _, c := range cases {
			fmt.Printf("%s  %-8s  %s  %s\n", c.ID, c.Status, c.UpdatedAt, c.Title)
		}
		return
	}

	store, err := session.Open(cfg.ResolvedCachePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := tui.NewApp(cfg, client, store)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
