package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnlocal/jobhub/internal/repo/jsonfile"
)

type getMessagesRequest struct {
	credentials
	OtherUser string `json:"other_user"`
}

func (h *CommandHandler) getMessages(ctx *gin.Context, raw []byte) {
	var req getMessagesRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if !h.users.Authenticate(req.Email, req.Password) {
		RespondInvalidCredentials(ctx)
		return
	}

	msgs := h.messages.Conversation(req.Email, req.OtherUser)

	RespondSuccess(ctx, gin.H{"messages": msgs})
}

type sendMessageRequest struct {
	credentials
	To      string `json:"to"`
	Message string `json:"message"`
}

func (h *CommandHandler) sendMessage(ctx *gin.Context, raw []byte) {
	var req sendMessageRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if !h.users.Authenticate(req.Email, req.Password) {
		RespondInvalidCredentials(ctx)
		return
	}

	if req.To == "" || req.Message == "" {
		RespondError(ctx, http.StatusBadRequest, "Missing recipient or message")
		return
	}

	if err := h.messages.Append(req.Email, req.To, req.Message); err != nil {
		if errors.Is(err, jsonfile.ErrRecipientNotFound) {
			RespondError(ctx, http.StatusNotFound, "Recipient not found")
			return
		}

		h.log.Error("send message failed", "from", req.Email, "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	RespondSuccess(ctx, nil)
}
