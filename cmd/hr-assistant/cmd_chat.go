package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kazifarms/hr-assistant/internal/server"
	"github.com/kazifarms/hr-assistant/internal/store"
)

var chatFlags struct {
	session string
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive HR chat with conversation memory",
	Long: "Interactive chat. Commands:\n" +
		"  /new       start a new session\n" +
		"  /history   show this session's messages\n" +
		"  /sessions  list stored sessions\n" +
		"  /clear     delete this session\n" +
		"  /quit      exit",
	RunE: runChatCmd,
}

func init() {
	chatCmd.Flags().StringVar(&chatFlags.session, "session", "", "resume an existing session")
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()
	return chat(cmd.Context(), a.svc, a.memory, chatFlags.session, cmd.InOrStdin(), cmd.OutOrStdout())
}

// chat runs the read-answer loop until /quit or end of input.
func chat(ctx context.Context, asker server.Asker, memory *store.Store, session string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Kazi Farms HR assistant. Type /quit to exit.")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/new":
			session = ""
			fmt.Fprintln(out, "Started a new session.")
			continue
		case strings.HasPrefix(line, "/"):
			if err := chatCommand(ctx, memory, &session, line, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			continue
		}

		ans, err := asker.Ask(ctx, session, line)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(out, "Session not found, starting a new one.")
			session = ""
			ans, err = asker.Ask(ctx, session, line)
		}
		if err != nil {
			return err
		}
		session = ans.SessionID
		printAnswer(out, ans)
		fmt.Fprintln(out)
	}
}

func chatCommand(ctx context.Context, memory *store.Store, session *string, line string, out io.Writer) error {
	switch line {
	case "/history":
		if *session == "" {
			fmt.Fprintln(out, "No messages yet.")
			return nil
		}
		msgs, err := memory.History(ctx, *session, 0)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Fprintf(out, "[%s] %s: %s\n", m.Timestamp.Format("15:04:05"), m.Role, m.Content)
		}
	case "/sessions":
		sessions, err := memory.ListSessions(ctx)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Fprintf(out, "%s  %3d msgs  %s\n", s.SessionID, s.MessageCount, s.Summary)
		}
	case "/clear":
		if *session == "" {
			return nil
		}
		if err := memory.ClearSession(ctx, *session); err != nil {
			return err
		}
		*session = ""
		fmt.Fprintln(out, "Session cleared.")
	default:
		fmt.Fprintf(out, "unknown command %s\n", line)
	}
	return nil
}
