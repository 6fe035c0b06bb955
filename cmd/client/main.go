package main

import (
	"bufio"
	"chat-relay/domain/event"
	"chat-relay/infrastructure/ws"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string `envconfig:"CHAT_SERVER_URL" default:"ws://localhost:5000/ws"`
	Username  string `envconfig:"CHAT_USERNAME"`
	Room      string `envconfig:"CHAT_ROOM" default:"general"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the websocket client lifecycle: connect, register, join,
// then one goroutine rendering inbound frames while the main loop reads
// stdin commands.
func run() (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	reader := bufio.NewScanner(os.Stdin)
	username := config.Username
	for username == "" {
		fmt.Print("Enter your username: ")
		if !reader.Scan() {
			return exitOK, nil
		}
		username = strings.TrimSpace(reader.Text())
	}
	userID := uuid.NewString()
	currentRoom := config.Room

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.ServerURL, nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerURL, err)
	}
	defer conn.Close()

	color.Greenln("Connected to " + config.ServerURL)
	fmt.Println("Commands: /quit, /rooms <name>, /leave")

	send := func(name string, payload any) error {
		return conn.WriteJSON(ws.OutboundFrame{Event: event.Name(name), Data: payload})
	}

	if err := send("register", ws.RegisterPayload{UserID: userID, Username: username}); err != nil {
		return exitRuntime, err
	}
	if err := send("join_room", ws.RoomPayload{Room: currentRoom, UserID: userID}); err != nil {
		return exitRuntime, err
	}

	// Reception loop runs until the connection or the context dies.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var frame ws.Frame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			render(frame, username)
		}
	}()

	// Input loop.
	input := make(chan string)
	go func() {
		defer close(input)
		for reader.Scan() {
			input <- reader.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return exitOK, nil
		case <-done:
			color.Redln("Disconnected from server")
			return exitRuntime, nil
		case line, ok := <-input:
			if !ok {
				return exitOK, nil
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case line == "/quit":
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return exitOK, nil
			case line == "/leave":
				_ = send("leave_room", ws.RoomPayload{Room: currentRoom, UserID: userID})
				color.Yellowln("Left room: " + currentRoom)
			case strings.HasPrefix(line, "/rooms "):
				next := strings.TrimSpace(strings.TrimPrefix(line, "/rooms "))
				if next == "" {
					continue
				}
				_ = send("leave_room", ws.RoomPayload{Room: currentRoom, UserID: userID})
				currentRoom = next
				_ = send("join_room", ws.RoomPayload{Room: currentRoom, UserID: userID})
				color.Yellowln("Joined room: " + currentRoom)
			default:
				_ = send("message", ws.MessagePayload{
					Room:      currentRoom,
					UserID:    userID,
					Message:   line,
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				})
			}
		}
	}
}

// render pretty-prints one inbound frame.
func render(frame ws.Frame, self string) {
	switch event.Name(frame.Event) {
	case event.ConnectionResponse:
		// Already reported on dial.

	case event.MessageDelivery:
		var m event.ChatMessage
		if json.Unmarshal(frame.Data, &m) != nil {
			return
		}
		// The sender already echoed its own line locally.
		if m.User == self {
			return
		}
		color.Cyanp(m.User + ": ")
		fmt.Println(m.Message)

	case event.RoomHistory:
		var history []event.ChatMessage
		if json.Unmarshal(frame.Data, &history) != nil {
			return
		}
		if len(history) == 0 {
			color.Grayln("No previous messages.")
			return
		}
		color.Grayln("Room history:")
		for _, m := range history {
			fmt.Printf("%s: %s\n", m.User, m.Message)
		}

	case event.UserJoined:
		var p event.Presence
		if json.Unmarshal(frame.Data, &p) != nil {
			return
		}
		color.Greenln(p.User + " joined the room")

	case event.UserLeft:
		var p event.Presence
		if json.Unmarshal(frame.Data, &p) != nil {
			return
		}
		color.Redln(p.User + " left the room")

	case event.UserListUpdate:
		var users []event.UserInfo
		if json.Unmarshal(frame.Data, &users) != nil {
			return
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Online users"})
		table.SetBorder(false)
		table.SetHeaderLine(false)
		table.SetColumnSeparator("")
		for _, u := range users {
			table.Append([]string{u.Username})
		}
		table.Render()
	}
}
