package libraries

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebSocketMessage represents the standard structure for all websocket messages
type WebSocketMessageType string

const (
	WebSocketMessageTypePing          WebSocketMessageType = "ping"
	WebSocketMessageTypePong          WebSocketMessageType = "pong"
	WebSocketMessageTypeError         WebSocketMessageType = "error"
	WebSocketMessageTypeMessage       WebSocketMessageType = "chat_message"
	WebSocketMessageTypeChatResponse  WebSocketMessageType = "chat_response"
	WebSocketMessageTypeChatStarting  WebSocketMessageType = "chat_starting"
	WebSocketMessageTypeChatCompleted WebSocketMessageType = "chat_completed"
)

// ErrClientGone is returned by sends after the client disconnected, so a turn
// goroutine still streaming can abort instead of panicking.
var ErrClientGone = errors.New("websocket client is gone")

type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	mu     sync.Mutex
	closed bool
}

// trySend queues a frame for the write pump. After the client is closed, or
// when its buffer is full (a stalled reader), the frame is dropped and the
// caller gets ErrClientGone.
func (c *Client) trySend(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientGone
	}
	select {
	case c.Send <- message:
		return nil
	default:
		return ErrClientGone
	}
}

// close marks the client gone and closes the send channel exactly once. The
// closed flag keeps late sends from turn goroutines off the closed channel.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

type Hub struct {
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
}

type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

type ChatMessagePayload struct {
	ChatroomId string `json:"chatroom_id,omitempty"`
	Message    string `json:"message"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ID] = client
		case client := <-h.Unregister:
			if _, exists := h.Clients[client.ID]; exists {
				delete(h.Clients, client.ID)
				client.close()
			}
		}
	}
}

func (h *Hub) SendMessage(client *Client, message []byte) error {
	return client.trySend(message)
}

// SendErrorMessage sends a standardized error message to a client
func SendErrorMessage(hub *Hub, client *Client, errorMsg string) error {
	errorResp := WebSocketMessage{
		Type: WebSocketMessageTypeError,
		Data: &ChatMessagePayload{
			Message: errorMsg,
		},
	}
	errorBytes, err := json.Marshal(errorResp)
	if err != nil {
		log.Println("failed to marshal error response:", err)
		return err
	}
	return hub.SendMessage(client, errorBytes)
}

// sendPongMessage sends a standardized pong message to a client
func sendPongMessage(hub *Hub, client *Client) {
	pongResp := WebSocketMessage{
		Type: WebSocketMessageTypePong,
	}
	pongBytes, err := json.Marshal(pongResp)
	if err != nil {
		log.Println("failed to marshal pong response:", err)
		return
	}
	hub.SendMessage(client, pongBytes)
}

// SendEventType sends a bare event type message to a client
func SendEventType(hub *Hub, client *Client, eventType WebSocketMessageType) error {
	eventTypeResp := WebSocketMessage{
		Type: eventType,
	}
	eventTypeBytes, err := json.Marshal(eventTypeResp)
	if err != nil {
		log.Println("failed to marshal event type response:", err)
		return err
	}
	return hub.SendMessage(client, eventTypeBytes)
}

// SendChatMessageResponse sends a chat turn event to a client
func SendChatMessageResponse(hub *Hub, client *Client, Type WebSocketMessageType, message *ChatMessagePayload) error {
	chatMessageResponseResp := WebSocketMessage{
		Type: Type,
		Data: message,
	}

	chatMessageResponseBytes, err := json.Marshal(chatMessageResponseResp)
	if err != nil {
		log.Println("failed to marshal chat message response:", err)
		return err
	}
	return hub.SendMessage(client, chatMessageResponseBytes)
}

// parseWebSocketMessage parses incoming websocket message and returns the message structure
func parseWebSocketMessage(msg []byte) (*WebSocketMessage, error) {
	var rawMessage struct {
		Type WebSocketMessageType `json:"type"`
		Data json.RawMessage      `json:"data,omitempty"`
	}
	if err := json.Unmarshal(msg, &rawMessage); err != nil {
		return nil, err
	}

	message := &WebSocketMessage{
		Type: rawMessage.Type,
	}

	if len(rawMessage.Data) > 0 {
		switch rawMessage.Type {
		case WebSocketMessageTypeMessage:
			var chatPayload ChatMessagePayload
			if err := json.Unmarshal(rawMessage.Data, &chatPayload); err != nil {
				return nil, err
			}
			message.Data = &chatPayload
		default:
			var data interface{}
			if err := json.Unmarshal(rawMessage.Data, &data); err != nil {
				return nil, err
			}
			message.Data = data
		}
	}

	return message, nil
}

// ChatMessageProcessor defines an interface for processing chat messages
type ChatMessageProcessor interface {
	ProcessChatMessage(hub *Hub, client *Client, chatroomId string, message *ChatMessagePayload)
}

func WebSocketHandler(hub *Hub, processor ChatMessageProcessor) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.Register <- client

		// Write loop
		go func() {
			defer func() {
				hub.Unregister <- client
				conn.Close()
			}()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("write error:", err)
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				break
			}

			message, err := parseWebSocketMessage(msg)
			if err != nil {
				log.Println("failed to parse JSON:", err)
				SendErrorMessage(hub, client, "Invalid JSON format")
				continue
			}

			if message.Type == WebSocketMessageTypePing {
				sendPongMessage(hub, client)
			} else if message.Type == WebSocketMessageTypeMessage {
				if message.Data == nil {
					SendErrorMessage(hub, client, "Chat message payload is required")
					continue
				}
				chatPayload, ok := message.Data.(*ChatMessagePayload)
				if !ok {
					SendErrorMessage(hub, client, "Invalid chat message payload type")
					continue
				}
				chatroomId := chatPayload.ChatroomId
				if chatroomId == "" {
					SendErrorMessage(hub, client, "Chatroom ID is required")
					continue
				}
				// one goroutine per turn; turns never block each other
				go processor.ProcessChatMessage(hub, client, chatroomId, chatPayload)
			} else {
				SendErrorMessage(hub, client, "Type is invalid or not provided")
				continue
			}
		}

		hub.Unregister <- client
		conn.Close()
	})
}
