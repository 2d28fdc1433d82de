package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/nikbrunner/bark/internal/command"
	"github.com/nikbrunner/bark/internal/config"
	"github.com/nikbrunner/bark/internal/github"
	"github.com/nikbrunner/bark/internal/logger"
	"github.com/nikbrunner/bark/internal/menu"
	"github.com/nikbrunner/bark/internal/model"
	"github.com/nikbrunner/bark/internal/picker"
	"github.com/nikbrunner/bark/internal/prompt"
	"github.com/nikbrunner/bark/internal/search"
	"github.com/nikbrunner/bark/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) >= 1 {
		switch args[0] {
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "import":
			if len(args) < 2 {
				return errors.New("usage: bark import <file.html>")
			}
		case "stars":
			if len(args) < 2 {
				return errors.New("usage: bark stars <user> [--now]")
			}
		case "find":
			if len(args) < 2 {
				return errors.New("usage: bark find <query>")
			}
		}
	}

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.dispatch(ctx, args); err != nil {
		a.log.Error("bark failed", logger.String("args", strings.Join(args, " ")), logger.Error(err))
		return err
	}
	return nil
}

func printHelp() {
	help := `bark - bookmark manager

Usage:
  bark                     Open the interactive menu
  bark find <query>        Fuzzy search → select → open (y copies the URL)
  bark <query>             Same as find
  bark import <file>       Import bookmarks from Netscape HTML
  bark export [path]       Export bookmarks to HTML
  bark stars <user> [--now]
                           Import a user's starred GitHub repositories;
                           --now stamps them with the import time
  bark help                Show this help

Menu:
  (A) Add a bookmark         (E) Edit a bookmark
  (B) List by date           (D) Delete a bookmark
  (T) List by title          (S) Search bookmarks
  (G) Import GitHub stars    (I) Import HTML
  (X) Export HTML            (Q) Quit

Configuration:
  ~/.config/bark/config.json
  .env / environment: BARK_DB, BARK_LOG_FILE, BARK_LOG_LEVEL, GITHUB_TOKEN
`
	fmt.Print(help)
}

// app holds what every subcommand shares. The store is opened once and
// closed on return.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	store *storage.SQLiteStorage
	stars *github.Client
}

func setup(ctx context.Context) (*app, error) {
	configPath, err := config.DefaultConfigFilePath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		log.Error("opening database failed", logger.String("path", cfg.DatabasePath), logger.Error(err))
		return nil, err
	}

	if _, err := (command.CreateTable{Store: store}).Execute(ctx, command.None{}); err != nil {
		store.Close()
		return nil, err
	}

	log.Info("started", logger.String("db", store.Path()), logger.Bool("githubToken", cfg.GitHubToken != ""))

	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		stars: github.NewClient(ctx, github.ClientParams{BaseURL: cfg.GitHubAPIURL, Token: cfg.GitHubToken}),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing database", logger.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.runMenu(ctx)
	}

	switch args[0] {
	case "import":
		return a.runImport(ctx, args[1])
	case "export":
		var outputPath string
		if len(args) >= 2 {
			outputPath = args[1]
		}
		return a.runExport(ctx, outputPath)
	case "stars":
		return a.runStars(ctx, args[1:])
	case "find":
		return a.runFind(ctx, strings.Join(args[1:], " "))
	default:
		// Treat as search query (join all remaining args)
		return a.runFind(ctx, strings.Join(args, " "))
	}
}

// runMenu runs the interactive menu. Without a terminal it reads plain
// lines, so scripted input works.
func (a *app) runMenu(ctx context.Context) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	var p prompt.Prompter = prompt.NewLines(os.Stdin, os.Stdout)
	styles := menu.PlainStyles()
	if interactive {
		p = prompt.NewTea()
		styles = menu.DefaultStyles()
	}

	deps := menu.Deps{Store: a.store, Stars: a.stars, Log: a.log}
	m := menu.New(menu.Params{
		Options:  func() []menu.Entry { return menu.Options(deps) },
		Prompter: p,
		Out:      os.Stdout,
		Clear:    interactive,
		Styles:   styles,
	})
	return m.Run(ctx)
}

func (a *app) runImport(ctx context.Context, filePath string) error {
	imp := command.ImportHTML{Add: command.AddBookmark{Store: a.store}, Log: a.log}
	res, err := imp.Execute(ctx, filePath)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s bookmarks\n", res.Payload.Render())
	return nil
}

func (a *app) runExport(ctx context.Context, outputPath string) error {
	res, err := command.ExportHTML{Store: a.store, Log: a.log}.Execute(ctx, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Exported bookmarks to %s\n", res.Payload.Render())
	return nil
}

func (a *app) runStars(ctx context.Context, args []string) error {
	criteria := command.ImportCriteria{PreserveTimestamps: a.cfg.PreserveTimestamps}
	for _, arg := range args {
		switch {
		case arg == "--now":
			criteria.PreserveTimestamps = false
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %s", arg)
		case criteria.Username == "":
			criteria.Username = arg
		default:
			return fmt.Errorf("unexpected argument %s", arg)
		}
	}
	if criteria.Username == "" {
		return errors.New("usage: bark stars <user> [--now]")
	}

	imp := command.ImportStars{Source: a.stars, Add: command.AddBookmark{Store: a.store}, Log: a.log}
	res, err := imp.Execute(ctx, criteria)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s bookmarks from starred repos!\n", res.Payload.Render())
	return nil
}

// runFind performs a fuzzy search and opens or copies the picked bookmark.
func (a *app) runFind(ctx context.Context, query string) error {
	res, err := command.ListBookmarks{Store: a.store}.Execute(ctx, command.None{})
	if err != nil {
		return err
	}

	results := search.FuzzySearchBookmarks(res.Payload.(command.Rows), query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return nil
	}

	var selected *model.Bookmark
	action := picker.ActionOpen

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		finalModel, err := tea.NewProgram(picker.New(results, query), tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}

		final := finalModel.(picker.Picker)
		if err := final.Err(); err != nil {
			return fmt.Errorf("copying URL: %w", err)
		}
		selected = final.SelectedBookmark()
		action = final.Action()
	}

	if selected == nil {
		return nil
	}

	switch action {
	case picker.ActionCopy:
		fmt.Printf("Copied: %s\n", selected.URL)
	case picker.ActionOpen:
		a.log.Info("opening bookmark", logger.Int64("id", selected.ID), logger.String("url", selected.URL))
		openURL(selected.URL)
	}
	return nil
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
