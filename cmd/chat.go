/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/longkey1/chatbot/internal/chat"
	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/longkey1/chatbot/internal/render"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Start an interactive chat with the model.

Every message is sent together with the whole conversation so far. While a
request is in flight a "Thinking..." indicator is shown; it is replaced by the
reply when one arrives. Failed requests are logged and leave no reply unless
surface_errors is enabled.

The conversation exists only for the lifetime of the command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := newSession()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		if err := runInteractiveMode(cmd.Context(), sess); err != nil {
			return fmt.Errorf("interactive mode: %w", err)
		}
		return nil
	},
}

// runInteractiveMode reads messages until /exit or Ctrl+D
func runInteractiveMode(ctx context.Context, sess *chatbot.Session) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "You> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "/exit",
	})
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(os.Stderr, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n\n")
	render.GreetingTurn(os.Stdout)
	fmt.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleSpecialCommand(input, sess) {
				continue
			}
			break
		}

		done, err := sess.Submit(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		spinner := render.NewSpinner(os.Stderr, chat.Placeholder)
		spinner.Start()
		res := <-done
		spinner.Stop()

		switch {
		case res.OK():
			render.Turn(os.Stdout, res.Turn)
			fmt.Println()
		case sess.Options().SurfaceErrors:
			render.Turn(os.Stdout, chat.ModelTurn(chatbot.ErrorTurnText))
			fmt.Println()
		}
	}

	fmt.Fprintln(os.Stderr, "Goodbye!")
	sess.Wait()
	return nil
}

// handleSpecialCommand processes special commands in interactive mode
// Returns true to continue the loop, false to exit
func handleSpecialCommand(command string, sess *chatbot.Session) bool {
	command = strings.ToLower(strings.TrimSpace(command))

	switch command {
	case "/help", "/h":
		fmt.Fprintln(os.Stderr, "\nAvailable commands:")
		fmt.Fprintln(os.Stderr, "  /help, /h     - Show this help message")
		fmt.Fprintln(os.Stderr, "  /history      - Show the conversation so far")
		fmt.Fprintln(os.Stderr, "  /info, /i     - Show session information")
		fmt.Fprintln(os.Stderr, "  /clear, /c    - Forget the conversation and clear the screen")
		fmt.Fprintln(os.Stderr, "  /exit, /quit  - Exit interactive mode")
		fmt.Fprintln(os.Stderr, "  Ctrl+D        - Exit interactive mode")
		fmt.Fprintln(os.Stderr, "")
		return true

	case "/history":
		turns := sess.Conversation.Turns()
		if len(turns) == 0 {
			fmt.Fprintln(os.Stderr, "No messages yet.")
			return true
		}
		fmt.Println()
		render.Conversation(os.Stdout, turns)
		fmt.Println()
		return true

	case "/info", "/i":
		fmt.Fprintln(os.Stderr, "\nSession Information:")
		fmt.Fprintf(os.Stderr, "  ID: %s\n", sess.GetShortID())
		fmt.Fprintf(os.Stderr, "  Full ID: %s\n", sess.ID)
		fmt.Fprintf(os.Stderr, "  Turns: %d\n", sess.Conversation.Len())
		fmt.Fprintf(os.Stderr, "  In flight: %v\n", sess.Conversation.HasPlaceholder())
		fmt.Fprintln(os.Stderr, "")
		return true

	case "/clear", "/c":
		sess.Conversation.Clear()
		fmt.Print("\033[H\033[2J")
		render.GreetingTurn(os.Stdout)
		fmt.Println()
		return true

	case "/exit", "/quit", "/q":
		return false

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s (type '/help' for available commands)\n", command)
		return true
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
