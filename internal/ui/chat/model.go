// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/onyx-tui/internal/backend"
	"github.com/jeranaias/onyx-tui/internal/commands"
	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/logging"
	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/stream"
	"github.com/jeranaias/onyx-tui/internal/textedit"
	"github.com/jeranaias/onyx-tui/internal/ui/components"
	"github.com/jeranaias/onyx-tui/internal/ui/cursor"
	"github.com/jeranaias/onyx-tui/internal/ui/scroll"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// =============================================================================
// MODE
// =============================================================================

// Mode is the submission state of the session.
type Mode int

const (
	// ModeIdle accepts new prompts.
	ModeIdle Mode = iota
	// ModeAwaitingReply has a reply outstanding; prompts are rejected.
	ModeAwaitingReply
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeAwaitingReply:
		return "AwaitingReply"
	default:
		return "Unknown"
	}
}

// NoBackendReply is the assistant reply to a prompt when no backend is
// configured.
const NoBackendReply = "Please configure your API key first. Type /config to open the configuration editor."

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a new Model. Only Config is required.
type Options struct {
	Config *config.Config

	// Backend answers prompts. Nil means no provider is usable yet.
	Backend backend.Backend

	// Source overrides the event source derived from Backend.
	Source stream.Source

	// NewBackend rebuilds the backend after the config changes.
	// Defaults to backend.New.
	NewBackend func(*config.Config) (backend.Backend, error)

	// SaveConfig persists the config from the editor. Defaults to
	// config.Save at the config's own path.
	SaveConfig func(*config.Config) error

	// Commands is the slash-command table. Defaults to commands.DefaultTable.
	Commands *commands.Table

	Theme *styles.Theme

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Context is the session root; cancelling it stops outstanding replies.
	Context context.Context

	// Notice is shown as the first assistant message when set.
	Notice string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	cfg        *config.Config
	theme      *styles.Theme
	keys       KeyMap
	editorKeys EditorKeyMap
	now        func() time.Time
	logger     *log.Logger

	backend        backend.Backend
	source         stream.Source
	sourceOverride bool
	newBackend     func(*config.Config) (backend.Backend, error)
	saveConfig     func(*config.Config) error

	// Input state
	buffer  *textedit.Buffer
	undo    *textedit.UndoManager
	table   *commands.Table
	palette *commands.Palette
	cursor  *cursor.TerminalCursor

	// Transcript state
	conversation *model.Conversation
	scroll       *scroll.Manager
	transcript   *components.Transcript

	// Widgets
	input       *components.InputBox
	paletteView *components.PaletteView
	spinner     *components.Spinner
	editor      *configEditor

	cancel *cancelManager

	mode           Mode
	showWelcome    bool
	notification   string
	notificationID int

	width  int
	height int
	ready  bool
}

// New creates a chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	table := opts.Commands
	if table == nil {
		table = commands.DefaultTable()
	}
	newBackend := opts.NewBackend
	if newBackend == nil {
		newBackend = backend.New
	}
	saveConfig := opts.SaveConfig
	if saveConfig == nil {
		saveConfig = saveToOwnPath
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}

	m := Model{
		cfg:          cfg,
		theme:        theme,
		keys:         DefaultKeyMap(),
		editorKeys:   DefaultEditorKeyMap(),
		now:          now,
		logger:       logging.For("chat"),
		newBackend:   newBackend,
		saveConfig:   saveConfig,
		buffer:       textedit.NewBuffer(),
		undo:         textedit.NewUndoManagerWithClock(now),
		table:        table,
		palette:      commands.NewPalette(table),
		conversation: model.NewConversation(),
		scroll:       scroll.New(),
		transcript:   components.NewTranscript(theme, cfg.Display),
		input:        components.NewInputBox(theme),
		paletteView:  components.NewPaletteView(theme),
		spinner:      components.NewSpinner(theme),
		cancel:       newCancelManager(parent),
		showWelcome:  true,
	}
	m.cursor = cursor.New(cursor.ParseStyle(cfg.Display.CursorStyle), blinkInterval(cfg), now())

	m.setBackend(opts.Backend)
	if opts.Source != nil {
		m.source = opts.Source
		m.sourceOverride = true
	}

	if m.backend == nil && cfg.MissingAPIKey() {
		m.conversation.Add(model.NewAssistantMessage(components.MissingKeyNotice))
	}
	if opts.Notice != "" {
		m.conversation.Add(model.NewAssistantMessage(opts.Notice))
	}
	return m
}

// saveToOwnPath writes cfg back to the file it was loaded from.
func saveToOwnPath(cfg *config.Config) error {
	path := cfg.Path()
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	return config.Save(cfg, path)
}

func blinkInterval(cfg *config.Config) time.Duration {
	if cfg.Display.CursorBlinkMS <= 0 {
		return cursor.DefaultBlinkInterval
	}
	return time.Duration(cfg.Display.CursorBlinkMS) * time.Millisecond
}

// setBackend installs b and derives the event source from it.
func (m *Model) setBackend(b backend.Backend) {
	m.backend = b
	if m.sourceOverride {
		return
	}
	if b == nil {
		m.source = nil
		return
	}
	m.source = backend.SourceFor(b)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Mode returns the submission state.
func (m Model) Mode() Mode { return m.mode }

// Conversation returns the session transcript.
func (m Model) Conversation() *model.Conversation { return m.conversation }

// InputText returns the text of the input buffer.
func (m Model) InputText() string { return m.buffer.Text() }

// Config returns the active configuration.
func (m Model) Config() *config.Config { return m.cfg }

// EditorOpen reports whether the configuration editor is shown.
func (m Model) EditorOpen() bool { return m.editor != nil }

// PaletteVisible reports whether the command palette is shown.
func (m Model) PaletteVisible() bool { return m.palette.Visible() }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the drain loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(IdleTickInterval)
}

// Update handles a message and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.transcript.SetWidth(m.chatInnerWidth())
		m.input.Width = m.width
		return m, nil

	case tea.KeyMsg:
		m.cursor.OnActivity(m.now())
		if m.editor != nil {
			return m.handleEditorKey(msg)
		}
		return m.handleKey(msg)

	case DrainTickMsg:
		return m.handleTick()

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case notificationTimeoutMsg:
		if msg.id == m.notificationID {
			m.notification = ""
		}
		return m, nil
	}
	return m, nil
}

// quit cancels outstanding work and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.logger.Debug("quit", "mode", m.mode)
	m.cancel.close()
	return m, tea.Quit
}

// applyConfig installs a new configuration and rebuilds what depends on it.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.transcript.Configure(cfg.Display)
	m.cursor.SetStyle(cursor.ParseStyle(cfg.Display.CursorStyle), blinkInterval(cfg))

	b, err := m.newBackend(cfg)
	if err != nil {
		m.logger.Info("backend unavailable", "provider", cfg.ActiveProvider, "err", err)
		b = nil
	}
	m.setBackend(b)
}
