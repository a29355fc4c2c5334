package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dori/todomaster/internal/app"
	"github.com/dori/todomaster/internal/assist"
	"github.com/dori/todomaster/internal/calendar"
	"github.com/dori/todomaster/internal/model"
	"github.com/dori/todomaster/internal/ui"
)

var version = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			run(func(a *app.App) error { return handleAdd(a, os.Args[2:]) })
			return
		case "sync":
			run(handleSync)
			return
		case "export":
			run(func(a *app.App) error { return handleExport(a, os.Args[2:]) })
			return
		case "import":
			run(func(a *app.App) error { return handleImport(a, os.Args[2:]) })
			return
		case "version":
			fmt.Printf("todomaster v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	run(runTUI)
}

// run opens the application, executes fn, and closes it again
func run(fn func(*app.App) error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	application, err := app.New(nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	attachCalendar(application, logger)

	if err := fn(application); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// attachCalendar wires the calendar write-through when configured. Failure
// to reach the calendar is not fatal; the app runs without it.
func attachCalendar(application *app.App, logger *slog.Logger) {
	cal := application.Config.Calendar
	if !cal.IsEnabled() || cal.CredentialsFile == "" {
		return
	}

	// The first authorization is interactive, so no deadline here; the
	// flow has its own timeout.
	ctx := context.Background()
	authed, err := calendar.Authorize(ctx, cal.CredentialsFile)
	if err != nil {
		logger.Warn("calendar authorization failed", slog.String("error", err.Error()))
		return
	}

	writer, err := calendar.NewGoogleWriter(ctx, authed, cal.CalendarName)
	if err != nil {
		logger.Warn("calendar unavailable", slog.String("error", err.Error()))
		return
	}
	application.Manager.SetCalendar(writer)
}

func printHelp() {
	help := `todomaster - A task manager with cloud sync

Usage:
  todomaster                  Start the TUI
  todomaster add <task>       Quick add a task
  todomaster sync             Run one sync pass and exit
  todomaster export <file>    Export all data as JSON
  todomaster import <file>    Import data, replacing everything
  todomaster version          Show version
  todomaster help             Show this help

Quick Add Syntax:
  todomaster add "Buy groceries"
  todomaster add "Review PR @work !high due:tomorrow"

  Tags:      @tag          (e.g., @home, @work, @errands)
  Priority:  !low !medium !high
  Due date:  due:tomorrow due:friday due:2026-01-15

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom
                1/2           List / Stats view

  Actions:      a             Add new task
                tab           Toggle done
                d             Delete task
                P             Pin task
                p             Record pomodoro
                o             Cycle sort order

  System:       s             Sync now
                ctrl+t        Toggle theme
                ?             Help
                q             Quit

Config file: ~/.config/todomaster/config.yaml`

	fmt.Println(help)
}

func handleAdd(application *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: todomaster add <task>")
	}

	parsed := assist.ParseQuickAdd(strings.Join(args, " "))

	task, err := model.NewTask(parsed.Title)
	if err != nil {
		return err
	}
	task.Priority = parsed.Priority
	task.DueDate = parsed.DueDate

	if err := application.Manager.AddTask(task); err != nil {
		return err
	}
	for _, name := range parsed.TagNames {
		if err := application.Manager.TagTaskByName(task.ID, name); err != nil {
			return err
		}
	}

	fmt.Printf("Created: %s\n", task.Title)
	if task.DueDate != nil {
		fmt.Printf("Due: %s\n", formatDueDate(*task.DueDate))
	}
	if task.Priority != model.PriorityNone {
		fmt.Printf("Priority: %s\n", task.Priority.Name())
	}
	if len(parsed.TagNames) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(parsed.TagNames, ", "))
	}
	return nil
}

func handleSync(application *app.App) error {
	if !application.SyncEnabled() {
		return fmt.Errorf("sync is not configured; set remote.endpoint in the config file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := application.Manager.Sync(ctx); err != nil {
		return err
	}
	fmt.Printf("Synced %d task(s)\n", len(application.Manager.Tasks()))
	return nil
}

func handleExport(application *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: todomaster export <file>")
	}

	data, err := application.Manager.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return err
	}
	fmt.Printf("Exported %d task(s) to %s\n", len(application.Manager.Tasks()), args[0])
	return nil
}

func handleImport(application *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: todomaster import <file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := application.Manager.Import(data); err != nil {
		return err
	}
	fmt.Printf("Imported %d task(s)\n", len(application.Manager.Tasks()))
	return nil
}

func formatDueDate(t time.Time) string {
	now := time.Now()

	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return "today"
	}

	tomorrow := now.AddDate(0, 0, 1)
	if t.Year() == tomorrow.Year() && t.YearDay() == tomorrow.YearDay() {
		return "tomorrow"
	}

	if t.Year() == now.Year() {
		return t.Format("Mon, Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

func runTUI(application *app.App) error {
	return ui.Run(application)
}
