package v1

import (
	"context"
	"log"
	"os"

	"docuchat-backend/internal/chat"
	"docuchat-backend/internal/config"
	"docuchat-backend/internal/handlers"
	"docuchat-backend/internal/libraries"
	llmHandlers "docuchat-backend/internal/llm_handlers"
	"docuchat-backend/internal/repo"
	"docuchat-backend/internal/retrieval"

	"github.com/gofiber/fiber/v2"
)

var hub *libraries.Hub

func init() {
	// Initialize the Hub once
	hub = libraries.NewHub()
	// Start the Hub in a goroutine
	go hub.Run()
}

// registerChatrooms wires the chatroom CRUD, message and streaming chat
// routes. The retriever and LLM client are process-wide collaborators built
// once here and shared read-only across requests.
func registerChatrooms(r fiber.Router) {
	chatroomRepo := repo.NewChatroomRepository(config.DB)
	messageRepo := repo.NewMessageRepository(config.DB)
	citationRepo := repo.NewCitationRepository(config.DB)

	ctx := context.Background()

	retriever, err := retrieval.NewPgVectorRetriever(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize retriever: %v", err)
	}

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "groq"
	}
	llmClient, err := llmHandlers.NewLLMClient(ctx, provider)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client (%s): %v", provider, err)
	}

	orchestrator := chat.NewOrchestrator(
		retriever,
		chat.NewLLMGenerator(llmClient),
		chatroomRepo,
		messageRepo,
	)

	chatroomHandler := handlers.NewChatroomHandler(chatroomRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, citationRepo)
	streamHandler := handlers.NewStreamHandler(orchestrator, chatroomRepo)
	processor := handlers.NewChatTurnProcessor(orchestrator, chatroomRepo)

	r.Post("/chatrooms", chatroomHandler.CreateChatroom)
	r.Get("/chatrooms", chatroomHandler.GetChatrooms)
	r.Get("/chatrooms/:chatroomId", chatroomHandler.GetChatroom)
	r.Delete("/chatrooms/:chatroomId", chatroomHandler.DeleteChatroom)

	r.Get("/chatrooms/:chatroomId/messages", messageHandler.GetMessagesByChatroomId)
	r.Post("/chatrooms/:chatroomId/chat", streamHandler.StreamChat)

	// the static comments route must come before the parameterized one
	r.Get("/messages/comments", messageHandler.GetMessagesWithComment)
	r.Get("/messages/:messageId", messageHandler.GetMessage)
	r.Put("/messages/:messageId/comment", messageHandler.UpsertMessageComment)
	r.Get("/messages/:messageId/citations", messageHandler.GetMessageCitations)

	// Use the Hub-based WebSocket handler
	r.Get("/ws", libraries.WebSocketHandler(hub, processor))
}
