// Package run implements the command that drives a full build automation
// session.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/di"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/models"
	"github.com/thomas-vilte/matebuild/internal/ui"
	"github.com/urfave/cli/v3"
)

type RunCommandFactory struct {
	container *di.Container
}

func NewRunCommandFactory(container *di.Container) *RunCommandFactory {
	return &RunCommandFactory{container: container}
}

func (f *RunCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Aliases:     []string{"r"},
		Usage:       t.GetMessage("run_command_usage", 0, nil),
		Description: t.GetMessage("run_command_description", 0, nil),
		Flags:       f.createFlags(t),
		Action:      f.createAction(t),
	}
}

func (f *RunCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("run_repo_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("run_name_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "plain",
			Usage: t.GetMessage("run_plain_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "export-log",
			Usage: t.GetMessage("run_export_flag_usage", 0, nil),
		},
	}
}

type runResult struct {
	report *models.RunReport
	err    error
}

func (f *RunCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := f.container.GetSecrets().Validate(); err != nil {
			return err
		}

		repoURL := cmd.String("repo")
		if repoURL == "" {
			return domainErrors.ErrRepoURLRequired
		}

		projectName := cmd.String("name")
		if projectName == "" {
			projectName = deriveProjectName(repoURL)
		}
		if projectName == "" {
			return domainErrors.ErrProjectNameRequired
		}

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		service, err := f.container.GetAutomationService(runCtx, repoURL)
		if err != nil {
			return err
		}

		ui.PrintSectionBanner(t.GetMessage("run_starting", 0, map[string]interface{}{"Repo": repoURL}))

		sessionLog := ui.NewSessionLog()
		events := make(chan models.ProgressEvent, 64)
		results := make(chan runResult, 1)

		progress := models.ProgressFunc(func(ev models.ProgressEvent) {
			if ev.Type == models.ProgressAdvisor {
				sessionLog.AppendAdvisor(ev.Message)
			} else {
				sessionLog.AppendBuild(ev.Message)
			}
			events <- ev
		})

		go func() {
			report, runErr := service.Run(runCtx, projectName, progress)
			close(events)
			results <- runResult{report: report, err: runErr}
		}()

		var runErr error
		if cmd.Bool("plain") {
			runErr = drainPlain(events, results)
		} else {
			runErr = drainProgram(events, results, stop)
		}

		if cmd.IsSet("export-log") {
			exportPath := cmd.String("export-log")
			if err := sessionLog.Export(exportPath); err != nil {
				return err
			}
			ui.PrintInfo(t.GetMessage("run_log_exported", 0, map[string]interface{}{"Path": exportPath}))
		}

		if errors.Is(runErr, context.Canceled) {
			ui.PrintWarning(t.GetMessage("run_cancelled", 0, nil))
			return nil
		}
		return runErr
	}
}

// drainPlain prints every event as a log line, for terminals where the
// interactive view is unwanted.
func drainPlain(events <-chan models.ProgressEvent, results <-chan runResult) error {
	for ev := range events {
		switch ev.Type {
		case models.ProgressStage:
			ui.PrintInfo(ev.Message)
		case models.ProgressAdvisor:
			fmt.Printf("%s %s\n", ui.Accent.Sprint("◆"), ev.Message)
		case models.ProgressWarning:
			ui.PrintWarning(ev.Message)
		case models.ProgressBuildSucceeded:
			ui.PrintSuccess(os.Stdout, ev.Message)
		case models.ProgressBuildExhausted:
			ui.PrintError(os.Stdout, ev.Message)
		default:
			fmt.Println(ev.Message)
		}
	}

	res := <-results
	return res.err
}

// drainProgram runs the interactive progress view until the worker finishes.
// The cancel function stops the worker when the user interrupts the view.
func drainProgram(events <-chan models.ProgressEvent, results <-chan runResult, cancel func()) error {
	p := tea.NewProgram(initialModel(events, results, cancel))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running progress view: %w", err)
	}

	final := m.(model)
	if final.result != nil {
		return final.result.err
	}
	return nil
}

func deriveProjectName(repoURL string) string {
	parsed, err := url.Parse(repoURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(path.Base(parsed.Path), ".git")
}

// Bubble Tea model for the progress view.

const maxVisibleLines = 8

var (
	stageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	advisorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	events  <-chan models.ProgressEvent
	results <-chan runResult
	cancel  func()

	spinner spinner.Model
	stage   string
	lines   []string
	result  *runResult
	done    bool
}

type eventMsg models.ProgressEvent
type streamClosedMsg struct{}
type resultMsg runResult

func initialModel(events <-chan models.ProgressEvent, results <-chan runResult, cancel func()) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return model{
		events:  events,
		results: results,
		cancel:  cancel,
		spinner: s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent)
}

func (m model) waitForEvent() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return streamClosedMsg{}
	}
	return eventMsg(ev)
}

func (m model) waitForResult() tea.Msg {
	return resultMsg(<-m.results)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		ev := models.ProgressEvent(msg)
		switch ev.Type {
		case models.ProgressStage:
			m.stage = ev.Message
		case models.ProgressAdvisor:
			m.lines = append(m.lines, advisorStyle.Render("◆ "+ev.Message))
		case models.ProgressWarning:
			m.lines = append(m.lines, warnStyle.Render("⚠ "+ev.Message))
		case models.ProgressBuildSucceeded, models.ProgressBuildExhausted:
			m.stage = ev.Message
			m.lines = append(m.lines, ev.Message)
		default:
			m.lines = append(m.lines, dimStyle.Render(ev.Message))
		}
		if len(m.lines) > maxVisibleLines {
			m.lines = m.lines[len(m.lines)-maxVisibleLines:]
		}
		return m, m.waitForEvent

	case streamClosedMsg:
		m.done = true
		return m, m.waitForResult

	case resultMsg:
		res := runResult(msg)
		m.result = &res
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// Raw mode turns the interrupt into a key event, so the worker
			// must be cancelled here. Keep draining until it closes the
			// events channel; quitting now would orphan the goroutine.
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	if m.done {
		b.WriteString(fmt.Sprintf("  %s\n", stageStyle.Render(m.stage)))
	} else {
		b.WriteString(fmt.Sprintf("\n %s %s\n", m.spinner.View(), stageStyle.Render(m.stage)))
	}
	for _, line := range m.lines {
		b.WriteString(fmt.Sprintf("   %s\n", line))
	}
	return b.String()
}
