package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	configfile "github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/config/file"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/docsource/filesystem"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/responder"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/tui/messages"
	"github.com/inkwell-labs/booktalk-cli/internal/core/services"
	"github.com/inkwell-labs/booktalk-cli/internal/logger"
)

var flagWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat [file.txt]",
	Short: "Start the interactive chat",
	Long: `Start the interactive terminal chat.

Pass a .txt file to load it before the chat opens, or load one later
with ctrl+o.

Controls:
  enter    - Send message
  ctrl+o   - Load a book
  ctrl+x   - Clear the conversation
  pgup/pgdn- Scroll the transcript
  ctrl+c   - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&flagWatch, "watch", false,
		"reload the book when its file changes on disk")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	cfg, err := configfile.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	strategy, err := responder.New(responder.Config{
		Provider: cfg.Responder.Provider,
		APIKey:   cfg.Responder.APIKey,
		BaseURL:  cfg.Responder.BaseURL,
		Model:    cfg.Responder.Model,
	})
	if err != nil {
		return fmt.Errorf("configuring responder: %w", err)
	}
	logger.Info("responder strategy: %s", strategy.Name())

	source := filesystem.New()
	documentService := services.NewDocumentService(source)
	chatService := services.NewChatService(strategy)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Preload the book named on the command line, if any. A failed
	// preload is reported but the chat still opens.
	var preloaded string
	if len(args) == 1 {
		doc, err := documentService.Load(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load %s: %v\n", args[0], err)
		} else {
			chatService.AttachDocument(doc)
			preloaded = args[0]
		}
	}

	app, err := tui.NewApp(tui.NewPorts(chatService, documentService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if flagWatch && preloaded != "" {
		err := source.Watch(ctx, preloaded, func(name string) {
			p.Send(messages.DocumentChanged{Name: name})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not watch %s: %v\n", preloaded, err)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
