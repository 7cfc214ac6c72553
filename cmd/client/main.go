package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

type message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// gorilla allows one concurrent writer; both the input and read loops send.
var writeMu sync.Mutex

type state struct {
	mu       sync.Mutex
	roomID   string
	username string
}

func (s *state) setRoomID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = id
}

func (s *state) getRoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:3000"
	if envAddr := os.Getenv("SERVER_ADDR"); envAddr != "" {
		addr = envAddr
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to the server. Make sure the server is running: %v", err)
	}
	defer conn.Close()

	clientState := &state{}
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter your username: ")
	if !scanner.Scan() {
		return
	}
	clientState.username = strings.TrimSpace(scanner.Text())

	fmt.Print("Enter the room ID you want to join (leave blank to create a new room): ")
	if !scanner.Scan() {
		return
	}

	if roomID := strings.TrimSpace(scanner.Text()); roomID != "" {
		clientState.setRoomID(roomID)
		send(conn, "joinRoom", map[string]string{"roomId": roomID, "username": clientState.username})
	} else {
		send(conn, "createRoom", map[string]string{"username": clientState.username})
	}

	done := make(chan struct{})
	go readLoop(conn, clientState, done)

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		for scanner.Scan() {
			handleInput(conn, clientState, scanner.Text())
		}
	}()

	select {
	case <-done:
		log.Println("Disconnected from server.")
	case <-inputDone:
		// input stream closed, shut the connection down cleanly
		sendClose(conn)
	case <-interrupt:
		sendClose(conn)
	}
}

func sendClose(conn *websocket.Conn) {
	writeMu.Lock()
	defer writeMu.Unlock()

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func handleInput(conn *websocket.Conn, clientState *state, input string) {
	roomID := clientState.getRoomID()
	if roomID == "" {
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || index < 0 || index > 8 {
		fmt.Println("Invalid move. Try again.")
		return
	}

	send(conn, "move", map[string]any{"roomId": roomID, "index": index})
}

func readLoop(conn *websocket.Conn, clientState *state, done chan struct{}) {
	defer close(done)

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Read error: %v", err)
			}
			return
		}

		switch msg.Action {
		case "roomCreated":
			var roomID string
			if err := json.Unmarshal(msg.Payload, &roomID); err != nil {
				continue
			}
			clientState.setRoomID(roomID)
			fmt.Printf("New room created with ID: %s. Waiting for another player to join...\n", roomID)

		case "roomFull":
			printString(msg.Payload)
			fmt.Println("Creating a new room instead...")
			clientState.setRoomID("")
			send(conn, "createRoom", map[string]string{"username": clientState.username})

		case "board":
			var board [9]string
			if err := json.Unmarshal(msg.Payload, &board); err != nil {
				continue
			}
			printBoard(board)

		case "turn":
			printString(msg.Payload)
			fmt.Print("Enter your move (0-8): ")

		case "message", "score":
			printString(msg.Payload)
		}
	}
}

func printString(payload json.RawMessage) {
	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		return
	}
	fmt.Println(text)
}

func printBoard(board [9]string) {
	fmt.Printf(`
  %s | %s | %s
 ---+---+---
  %s | %s | %s
 ---+---+---
  %s | %s | %s
`, board[0], board[1], board[2], board[3], board[4], board[5], board[6], board[7], board[8])
}

func send(conn *websocket.Conn, action string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal payload: %v", err)
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := conn.WriteJSON(message{Action: action, Payload: raw}); err != nil {
		log.Printf("Failed to send %s: %v", action, err)
	}
}
