// Package transcript renders the conversation log for the TUI.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/styles"
	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// timestampLayout is the display format for message timestamps.
// Timestamps are display-only; the log order is authoritative.
const timestampLayout = "15:04"

// thinkingIndicator is shown below the log while a response is pending.
const thinkingIndicator = "Assistant is thinking..."

// Transcript displays the ordered conversation log in a scrollable viewport.
type Transcript struct {
	viewport viewport.Model
	styles   *styles.Styles

	messages []domain.Message
	pending  bool
	width    int
	height   int
}

// NewTranscript creates a new transcript component.
func NewTranscript(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	vp := viewport.New(80, 20)

	return &Transcript{
		viewport: vp,
		styles:   s,
		width:    80,
		height:   20,
	}
}

// Init initialises the transcript.
func (t *Transcript) Init() tea.Cmd {
	return nil
}

// Update handles viewport messages (scrolling).
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// SetConversation replaces the displayed log and scrolls to the newest
// message.
func (t *Transcript) SetConversation(msgs []domain.Message, pending bool) {
	t.messages = msgs
	t.pending = pending
	t.viewport.SetContent(t.render())
	t.viewport.GotoBottom()
}

// Messages returns the displayed log.
func (t *Transcript) Messages() []domain.Message {
	return t.messages
}

// Pending returns whether the waiting indicator is shown.
func (t *Transcript) Pending() bool {
	return t.pending
}

// ScrollUp scrolls the transcript up by half a page.
func (t *Transcript) ScrollUp() {
	t.viewport.HalfViewUp()
}

// ScrollDown scrolls the transcript down by half a page.
func (t *Transcript) ScrollDown() {
	t.viewport.HalfViewDown()
}

// SetDimensions sets the transcript dimensions.
func (t *Transcript) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.viewport.Width = width
	t.viewport.Height = height
	t.viewport.SetContent(t.render())
	t.viewport.GotoBottom()
}

// render formats the log into styled lines.
func (t *Transcript) render() string {
	if len(t.messages) == 0 && !t.pending {
		return t.styles.Muted.Render("No messages yet. Load a book with ctrl+o and say hello.")
	}

	blocks := make([]string, 0, len(t.messages)+1)
	for i := range t.messages {
		blocks = append(blocks, t.renderMessage(&t.messages[i]))
	}

	if t.pending {
		blocks = append(blocks, t.styles.Muted.Render(thinkingIndicator))
	}

	return strings.Join(blocks, "\n\n")
}

// renderMessage formats a single message with sender label and timestamp.
func (t *Transcript) renderMessage(msg *domain.Message) string {
	var label string
	switch msg.Sender {
	case domain.SenderUser:
		label = t.styles.UserLabel.Render("You")
	case domain.SenderAssistant:
		label = t.styles.AssistantLabel.Render("Assistant")
	default:
		label = t.styles.Normal.Render(msg.Sender.String())
	}

	stamp := t.styles.Timestamp.Render(msg.Timestamp.Format(timestampLayout))
	header := lipgloss.JoinHorizontal(lipgloss.Left, label, "  ", stamp)

	body := t.styles.Normal.Width(t.width).Render(msg.Text)

	return header + "\n" + body
}
