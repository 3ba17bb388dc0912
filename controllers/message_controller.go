package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

// MessageController handles conversations and their messages. Membership in
// the conversation's participant set gates every read and write.
type MessageController struct {
	store store.Store
}

// NewMessageController creates a message controller.
func NewMessageController(s store.Store) *MessageController {
	return &MessageController{store: s}
}

// CreateConversationRequest represents the request body for opening a conversation
type CreateConversationRequest struct {
	ParticipantIDs []string `json:"participant_ids" binding:"required,min=2"`
	BookingID      *string  `json:"booking_id"`
}

// CreateMessageRequest represents the request body for sending a message.
// At least one of text and image_url must be set.
type CreateMessageRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

// CreateConversation handles POST /api/v1/conversations - the caller must be
// one of the participants; the participant set is closed afterwards.
func (mc *MessageController) CreateConversation(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	conversation := models.Conversation{
		ParticipantIDs: req.ParticipantIDs,
		BookingID:      req.BookingID,
	}
	if !conversation.HasParticipant(caller) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You must be a participant in the conversation")
		return
	}

	if err := mc.store.CreateConversation(c.Request.Context(), &conversation); err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	respondSuccess(c, http.StatusCreated, conversation)
}

// GetConversation handles GET /api/v1/conversations/:id - participants only
func (mc *MessageController) GetConversation(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := mc.store.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	if !conversation.HasParticipant(caller) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant in this conversation")
		return
	}

	respondSuccess(c, http.StatusOK, conversation)
}

// ListConversations handles GET /api/v1/conversations - the caller's conversations
func (mc *MessageController) ListConversations(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	conversations, err := mc.store.ListUserConversations(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	respondSuccess(c, http.StatusOK, conversations)
}

// CreateMessage handles POST /api/v1/conversations/:id/messages - the sender
// is always the caller; the insert and the conversation's last-message
// pointer commit atomically.
func (mc *MessageController) CreateMessage(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := mc.store.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	if !conversation.HasParticipant(caller) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant in this conversation")
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if req.Text == "" && req.ImageURL == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A message needs text or an image")
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       caller,
		Text:           req.Text,
		ImageURL:       req.ImageURL,
	}

	if err := mc.store.CreateMessage(c.Request.Context(), &message); err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	respondSuccess(c, http.StatusCreated, message)
}

// ListMessages handles GET /api/v1/conversations/:id/messages - participants only
func (mc *MessageController) ListMessages(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := mc.store.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	if !conversation.HasParticipant(caller) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant in this conversation")
		return
	}

	messages, err := mc.store.ListMessages(c.Request.Context(), conversation.ID)
	if err != nil {
		respondStoreError(c, err, "CONVERSATION_NOT_FOUND", "Conversation not found")
		return
	}

	respondSuccess(c, http.StatusOK, messages)
}
