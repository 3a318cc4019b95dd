// mindful-cli is a terminal client for the chat backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"MindfulChatGo/chatview"
	"MindfulChatGo/models"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	serverURL      string
	token          string
	conversationID uint
	demo           bool
)

var rootCmd = &cobra.Command{
	Use:           "mindful-cli",
	Short:         "Terminal client for MindfulChat",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Open a conversation with the MindfulChat assistant.
Without --token a demo user is logged in (development servers only).
With --demo no server is needed and replies come from the local templates.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "backend base URL")
	chatCmd.Flags().StringVar(&token, "token", os.Getenv("MINDFUL_TOKEN"), "bearer token")
	chatCmd.Flags().UintVar(&conversationID, "conversation", 0, "existing conversation id; a new one is created when 0")
	chatCmd.Flags().BoolVar(&demo, "demo", false, "run offline with template replies")
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func openView(ctx context.Context) (*chatview.View, error) {
	if demo {
		return chatview.New(chatview.NewDemoTransport(), chatview.Greeting.ConversationID, []models.Message{chatview.Greeting}), nil
	}

	client := chatview.NewAPIClient(serverURL, token)
	if token == "" {
		if _, err := client.LoginTestUser(ctx); err != nil {
			return nil, fmt.Errorf("login demo user: %w", err)
		}
	}

	id := conversationID
	if id == 0 {
		conv, err := client.CreateConversation(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		id = conv.ID
	}

	history, err := client.ListMessages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	if len(history) == 0 {
		history = []models.Message{chatview.Greeting}
	}
	return chatview.New(client, id, history), nil
}

// expandQuickReply turns /1../4 into the matching quick reply.
func expandQuickReply(line string) string {
	if !strings.HasPrefix(line, "/") {
		return line
	}
	n, err := strconv.Atoi(strings.TrimPrefix(line, "/"))
	if err != nil || n < 1 || n > len(chatview.QuickReplies) {
		return line
	}
	return chatview.QuickReplies[n-1]
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	view, err := openView(ctx)
	if err != nil {
		return err
	}

	width := terminalWidth()
	out := cmd.OutOrStdout()
	for _, msg := range view.Messages() {
		fmt.Fprintln(out, chatview.RenderMessage(msg, width))
	}
	for i, reply := range chatview.QuickReplies {
		fmt.Fprintf(out, "  /%d %s\n", i+1, reply)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprintln(out, chatview.RenderStatus(view.State()))
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" {
			return nil
		}

		view.SetInput(expandQuickReply(line))
		if !view.CanSend() {
			continue
		}

		seen := len(view.Messages())
		fmt.Fprintln(out, chatview.RenderStatus(chatview.Awaiting))
		if err := view.Send(ctx); err != nil && ctx.Err() != nil {
			return nil
		}

		// the typed line is already on screen
		for _, msg := range view.Messages()[seen:] {
			if msg.Role == models.RoleAssistant {
				fmt.Fprintln(out, chatview.RenderMessage(msg, width))
			}
		}
		for _, n := range view.DrainNotifications() {
			fmt.Fprintln(out, chatview.RenderNotification(n))
		}
		if view.CrisisOpen() {
			fmt.Fprintln(out, chatview.RenderCrisis(width))
			fmt.Fprint(out, "press enter to close ")
			scanner.Scan()
			view.CloseCrisis()
		}
	}
}
