package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type OnboardingSettings struct {
	Completed  bool   `json:"completed"`
	SeedSample bool   `json:"seed_sample"`
	ExportDir  string `json:"export_dir,omitempty"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	path := onboardingPath(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	stdinTTY := (fi.Mode() & os.ModeCharDevice) != 0
	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return needsOnboarding(settings, stdinTTY, stdoutTTY)
}

// needsOnboarding reports whether the wizard should run. It needs a
// terminal on both ends: piped output goes to the plain-text snapshot.
func needsOnboarding(settings OnboardingSettings, stdinTTY, stdoutTTY bool) bool {
	return !settings.Completed && stdinTTY && stdoutTTY
}

type onboardingStep int

const (
	stepSeed onboardingStep = iota
	stepExportDir
	stepDone
)

type onboardingModel struct {
	step       onboardingStep
	seed       bool
	defaultDir string
	dirInput   textinput.Model
	settings   OnboardingSettings
	status     string
	width      int
	height     int
}

var (
	obColorMuted  = lipgloss.Color("#7E8C80")
	obColorText   = lipgloss.Color("#D6E0D3")
	obColorAccent = lipgloss.Color("#8FA082")
	obColorDanger = lipgloss.Color("#f38ba8")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabInactive = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 2)

	obTabActive = lipgloss.NewStyle().
			Foreground(obColorText).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorAccent).
			Padding(0, 1)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obOptionStyle = lipgloss.NewStyle().
			Foreground(obColorText)

	obOptionSelected = lipgloss.NewStyle().
				Foreground(obColorAccent).
				Bold(true)

	obWarnStyle = lipgloss.NewStyle().
			Foreground(obColorDanger)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingModel(defaultDir string) onboardingModel {
	in := textinput.New()
	in.Placeholder = defaultDir
	in.CharLimit = 300
	in.Prompt = "dir> "
	in.TextStyle = lipgloss.NewStyle().Foreground(obColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(obColorMuted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(obColorText).Background(obColorAccent)
	in.Focus()

	return onboardingModel{
		step:       stepSeed,
		seed:       true,
		defaultDir: defaultDir,
		dirInput:   in,
		settings: OnboardingSettings{
			Completed:  true,
			SeedSample: true,
			ExportDir:  defaultDir,
		},
	}
}

func (m onboardingModel) Init() tea.Cmd { return nil }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.step {
		case stepSeed:
			switch msg.String() {
			case "y", "Y":
				m.seed = true
				return m.nextStep()
			case "n", "N":
				m.seed = false
				return m.nextStep()
			case "up", "k", "left", "h":
				m.seed = true
				return m, nil
			case "down", "j", "right", "l":
				m.seed = false
				return m, nil
			case "enter":
				return m.nextStep()
			case "ctrl+c", "q":
				m.settings.SeedSample = false
				m.status = "Setup canceled. Starting with an empty database."
				m.step = stepDone
				return m, tea.Quit
			default:
				return m, nil
			}
		case stepExportDir:
			switch msg.String() {
			case "enter":
				if dir := strings.TrimSpace(m.dirInput.Value()); dir != "" {
					m.settings.ExportDir = dir
				}
				m.status = "Exports will be written to " + m.settings.ExportDir
				m.step = stepDone
				return m, tea.Quit
			case "esc":
				m.status = "Using the default export directory " + m.settings.ExportDir
				m.step = stepDone
				return m, tea.Quit
			case "ctrl+c":
				m.status = "Setup canceled. Using the default export directory."
				m.step = stepDone
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.dirInput, cmd = m.dirInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m onboardingModel) nextStep() (tea.Model, tea.Cmd) {
	m.settings.SeedSample = m.seed
	m.step = stepExportDir
	return m, textinput.Blink
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	contentHeight := max(height-6, 8)
	content := m.renderContent(width, contentHeight)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(ui)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + obTitleStyle.Render("vista") + " " + obMutedStyle.Render("› Setup")
	right := obMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	seedTab := obTabInactive.Render("Sample Data")
	dirTab := obTabInactive.Render("Export Directory")
	if m.step == stepSeed {
		seedTab = obTabActive.Render("Sample Data")
	}
	if m.step == stepExportDir {
		dirTab = obTabActive.Render("Export Directory")
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, "  ", seedTab, dirTab))
}

func (m onboardingModel) renderFooter(width int) string {
	switch m.step {
	case stepSeed:
		return obFooterStyle.Width(width).Render("↑↓/jk to navigate  y/n enter to confirm  q cancel")
	case stepExportDir:
		return obFooterStyle.Width(width).Render("enter save  esc use default  ctrl+c cancel")
	default:
		return obFooterStyle.Width(width).Render("Setup complete")
	}
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	var body string
	switch m.step {
	case stepSeed:
		question := obLabelStyle.Render("Load the sample dataset?")
		on := "Load sample KPIs, products and customer segments"
		off := "Start with an empty database"

		var onDisplay, offDisplay string
		if m.seed {
			onDisplay = "  " + obOptionSelected.Render("→ "+on)
			offDisplay = "    " + obOptionStyle.Render(off)
		} else {
			onDisplay = "    " + obOptionStyle.Render(on)
			offDisplay = "  " + obOptionSelected.Render("→ "+off)
		}

		body = lipgloss.JoinVertical(
			lipgloss.Left,
			question,
			"",
			onDisplay,
			offDisplay,
			"",
			obMutedStyle.Render("Use arrow keys or j/k to navigate, y/n or Enter to confirm"),
			obMutedStyle.Render("You can change this later in ~/.vista/onboarding.json"),
		)
	case stepExportDir:
		input := obInputStyle.Width(max(30, cardWidth-14)).Render(m.dirInput.View())
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			obLabelStyle.Render("Where should CSV exports go?"),
			"",
			obMutedStyle.Render("Press e on a table to export the filtered, sorted rows."),
			obMutedStyle.Render("Leave empty to use "+m.defaultDir),
			"",
			obLabelStyle.Render("Export Directory"),
			input,
			"",
			obMutedStyle.Render("Press Enter to save, Esc to keep the default."),
		)
	default:
		msg := obMutedStyle.Render(m.status)
		if strings.Contains(strings.ToLower(m.status), "canceled") {
			msg = obWarnStyle.Render(m.status)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("Onboarding Complete"), "", msg)
	}

	card := obPanelStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func runOnboarding(configDir, defaultExportDir string) (OnboardingSettings, error) {
	model := newOnboardingModel(defaultExportDir)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}
