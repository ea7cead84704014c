// Package chat provides the main conversation view for the TUI.
package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/components/input"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/components/status"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/keymap"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/messages"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/styles"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/booktalk-cli/internal/logger"
)

// Mode identifies what the input line is currently for.
type Mode int

const (
	// ModeChat is the normal mode: the input holds a chat message.
	ModeChat Mode = iota

	// ModeLoad is the load prompt: the input holds a file path.
	ModeLoad

	// ModeConfirmClear awaits y/n confirmation before clearing.
	ModeConfirmClear
)

// View is the conversation view with transcript, input line and status bar.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.ChatInput
	transcript *transcript.Transcript
	statusbar  *status.Bar

	chatService     driving.ChatService
	documentService driving.DocumentService
	ctx             context.Context

	// changes is the single engine subscription, created once and reused
	// for the life of the view. The channel is buffered, so a mutation
	// landing between a refresh and the next receive is coalesced into
	// the buffer rather than lost.
	changes <-chan struct{}

	mode   Mode
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	documentService driving.DocumentService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:          s,
		keymap:          km,
		input:           input.NewChatInput(s),
		transcript:      transcript.NewTranscript(s),
		statusbar:       status.NewBar(s, km),
		chatService:     chatService,
		documentService: documentService,
		ctx:             context.Background(),
		mode:            ModeChat,
		width:           80,
		height:          24,
	}
	if chatService != nil {
		v.changes = chatService.Subscribe()
	}
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return tea.Batch(v.input.Init(), v.waitForChange())
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConversationChanged:
		v.refresh()
		return v, v.waitForChange()

	case messages.SubmissionResolved:
		v.refresh()
		return v, nil

	case messages.SubmissionRejected:
		// Admission control makes rejected submissions no-ops; surface
		// nothing in the transcript, but give the typed text back unless
		// the user has already started typing again.
		logger.Debug("submission rejected: %v", msg.Err)
		if strings.TrimSpace(v.input.Value()) == "" {
			v.input.SetValue(msg.Text)
		}
		v.refresh()
		return v, nil

	case messages.DocumentLoaded:
		v.handleDocumentLoaded(msg)
		return v, nil

	case messages.DocumentChanged:
		v.statusbar.SetMessage("reloading " + msg.Name)
		return v, v.loadDocument(msg.Name)

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to the input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case ModeConfirmClear:
		return v.handleConfirmClearKey(msg)
	case ModeLoad:
		return v.handleLoadKey(msg)
	case ModeChat:
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Load):
		v.enterLoadMode()
		return v, nil

	case keymap.Matches(key, v.keymap.Clear):
		v.mode = ModeConfirmClear
		return v, nil

	case keymap.Matches(key, v.keymap.ScrollUp):
		v.transcript.ScrollUp()
		return v, nil

	case keymap.Matches(key, v.keymap.ScrollDown):
		v.transcript.ScrollDown()
		return v, nil

	case msg.Type == tea.KeyEnter:
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleLoadKey processes keys while the load prompt is open.
func (v *View) handleLoadKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		v.leaveLoadMode()
		return v, nil

	case msg.Type == tea.KeyEnter:
		path := strings.TrimSpace(v.input.Value())
		v.leaveLoadMode()
		if path == "" {
			return v, nil
		}
		return v, v.loadDocument(path)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleConfirmClearKey processes the clear confirmation.
func (v *View) handleConfirmClearKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = ModeChat
		v.chatService.Clear()
		v.refresh()
		return v, func() tea.Msg { return messages.ConversationCleared{} }
	case "n", "N", "esc":
		v.mode = ModeChat
		return v, nil
	}
	return v, nil
}

// submit admits the typed text into the conversation.
//
// The pre-checks mirror the engine's admission control so the input buffer
// can be cleared immediately on acceptance; the engine stays authoritative
// and re-rejects on races.
func (v *View) submit() tea.Cmd {
	if v.chatService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoChatService} }
	}

	text := v.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if v.chatService.Snapshot().Pending {
		return nil
	}

	v.input.SetValue("")
	v.statusbar.SetState(status.StateThinking)

	return func() tea.Msg {
		if err := v.chatService.Submit(v.ctx, text); err != nil {
			return messages.SubmissionRejected{Err: err, Text: text}
		}
		return messages.SubmissionResolved{}
	}
}

// loadDocument loads a book and attaches it to the conversation.
func (v *View) loadDocument(path string) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.ErrorOccurred{Err: ErrNoDocumentService}
		}

		doc, err := v.documentService.Load(v.ctx, path)
		if err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		return messages.DocumentLoaded{Document: doc}
	}
}

// handleDocumentLoaded applies a load result.
func (v *View) handleDocumentLoaded(msg messages.DocumentLoaded) {
	if msg.Err != nil {
		// Failed loads mutate nothing; the prior book and log stay.
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.chatService.AttachDocument(msg.Document)
	v.statusbar.Clear()
	v.refresh()
}

// waitForChange re-reads the snapshot when the engine signals a mutation.
// It receives from the view's single long-lived subscription.
func (v *View) waitForChange() tea.Cmd {
	if v.changes == nil {
		return nil
	}
	ch := v.changes
	return func() tea.Msg {
		<-ch
		return messages.ConversationChanged{}
	}
}

// refresh re-renders the transcript and status bar from a fresh snapshot.
func (v *View) refresh() {
	if v.chatService == nil {
		return
	}

	snap := v.chatService.Snapshot()
	v.transcript.SetConversation(snap.Messages, snap.Pending)

	if snap.HasDocument() {
		v.statusbar.SetBookName(snap.Document.Name)
	} else {
		v.statusbar.SetBookName("")
	}

	if snap.Pending {
		v.statusbar.SetState(status.StateThinking)
	} else if v.statusbar.State() == status.StateThinking {
		v.statusbar.Clear()
	}
}

// enterLoadMode switches the input line to the path prompt.
func (v *View) enterLoadMode() {
	v.mode = ModeLoad
	v.input.SetValue("")
	v.input.SetPlaceholder(input.PathPlaceholder)
	v.statusbar.SetState(status.StatePrompt)
}

// leaveLoadMode restores the input line to chat mode.
func (v *View) leaveLoadMode() {
	v.mode = ModeChat
	v.input.SetValue("")
	v.input.SetPlaceholder(input.MessagePlaceholder)
	if v.statusbar.State() == status.StatePrompt {
		v.statusbar.Clear()
	}
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Booktalk")
	sections = append(sections, header, "")

	sections = append(sections, v.transcript.View(), "")

	if v.mode == ModeConfirmClear {
		confirm := v.styles.Border.Padding(0, 1).Render(
			v.styles.Normal.Render("Clear the conversation? (y/n)"),
		)
		sections = append(sections, confirm, "")
	}

	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.transcript.SetDimensions(width, height-9) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Input returns the current input value.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the input value.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}
