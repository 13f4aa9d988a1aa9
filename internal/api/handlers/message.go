package handlers

import (
	"messaging-service/internal/models"
	"messaging-service/internal/services"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	messages *services.MessageService
	threads  *services.ThreadService
}

func NewChatHandler(messages *services.MessageService, threads *services.ThreadService) *ChatHandler {
	return &ChatHandler{
		messages: messages,
		threads:  threads,
	}
}

// SendChatMessage godoc
// @Summary Send a direct message
// @Tags chat-messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SendChatMessageRequest true "Message"
// @Success 201 {object} response.Envelope{data=models.DirectMessage}
// @Failure 400 {object} response.Envelope "Validation error"
// @Router /chat-messages [post]
func (h *ChatHandler) SendChatMessage(c *gin.Context) {
	var req models.SendChatMessageRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	msg, err := h.messages.SendDirectMessage(c.Request.Context(), services.SendDirectMessageInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Type:       req.Type,
		Content:    req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, msg)
}

// FindChatThread godoc
// @Summary Conversation between two users
// @Description Messages in either direction, oldest first, with their replies. Paginated when pageNumber is given.
// @Tags chat-messages
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param peerUserId query string true "Peer user ID"
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]models.DirectMessage}
// @Failure 400 {object} response.Envelope "Validation error"
// @Router /chat-messages/thread [get]
func (h *ChatHandler) FindChatThread(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var q models.FindMessageThreadQuery
	_ = c.ShouldBindQuery(&q)

	res, err := h.threads.FindDirectThread(c.Request.Context(), q.UserID, q.PeerUserID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, res)
}

// ReplyChatMessage godoc
// @Summary Reply to a direct message
// @Tags chat-message-replies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ReplyChatMessageRequest true "Reply"
// @Success 201 {object} response.Envelope{data=models.DirectMessageReply}
// @Failure 400 {object} response.Envelope "Validation error"
// @Failure 404 {object} response.Envelope "Parent message not found"
// @Router /chat-message-replies [post]
func (h *ChatHandler) ReplyChatMessage(c *gin.Context) {
	var req models.ReplyChatMessageRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	reply, err := h.messages.ReplyToDirectMessage(c.Request.Context(), services.ReplyInput{
		SenderID:        req.SenderID,
		ParentMessageID: req.ChatMessageID,
		Type:            req.Type,
		Content:         req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, reply)
}

// FindChatReplyThread godoc
// @Summary Replies to a direct message
// @Tags chat-message-replies
// @Produce json
// @Security BearerAuth
// @Param chatMessageId path string true "Parent message ID"
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]models.DirectMessageReply}
// @Router /chat-message-replies/thread/{chatMessageId} [get]
func (h *ChatHandler) FindChatReplyThread(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.threads.FindDirectReplyThread(c.Request.Context(), c.Param("chatMessageId"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, res)
}

// SendGroupMessage godoc
// @Summary Send a message to a group
// @Description The sender must be an active member of the group.
// @Tags group-chat-messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SendGroupChatMessageRequest true "Message"
// @Success 201 {object} response.Envelope{data=models.GroupMessage}
// @Failure 400 {object} response.Envelope "Validation error"
// @Failure 403 {object} response.Envelope "Sender is not part of this group"
// @Router /group-chat-messages [post]
func (h *ChatHandler) SendGroupMessage(c *gin.Context) {
	var req models.SendGroupChatMessageRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	msg, err := h.messages.SendGroupMessage(c.Request.Context(), services.SendGroupMessageInput{
		GroupID:  req.GroupID,
		SenderID: req.SenderID,
		Type:     req.Type,
		Content:  req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, msg)
}

// FindGroupThread godoc
// @Summary Messages of a group
// @Tags group-chat-messages
// @Produce json
// @Security BearerAuth
// @Param groupId query string true "Group ID"
// @Param type query string false "Only messages of this type" Enums(TEXT, IMAGE, LINK, LOCATION)
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]models.GroupMessage}
// @Router /group-chat-messages/thread [get]
func (h *ChatHandler) FindGroupThread(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var q models.FindGroupThreadQuery
	_ = c.ShouldBindQuery(&q)

	res, err := h.threads.FindGroupThread(c.Request.Context(), q.GroupID, page, models.MessageType(q.Type))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, res)
}

// ReplyGroupMessage godoc
// @Summary Reply to a group message
// @Tags group-chat-message-replies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ReplyGroupChatMessageRequest true "Reply"
// @Success 201 {object} response.Envelope{data=models.GroupMessageReply}
// @Failure 404 {object} response.Envelope "Parent message not found"
// @Router /group-chat-message-replies [post]
func (h *ChatHandler) ReplyGroupMessage(c *gin.Context) {
	var req models.ReplyGroupChatMessageRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	reply, err := h.messages.ReplyToGroupMessage(c.Request.Context(), services.ReplyInput{
		SenderID:        req.SenderID,
		ParentMessageID: req.GroupChatMessageID,
		Type:            req.Type,
		Content:         req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, reply)
}

// FindGroupReplyThread godoc
// @Summary Replies to a group message
// @Tags group-chat-message-replies
// @Produce json
// @Security BearerAuth
// @Param groupChatMessageId path string true "Parent message ID"
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]models.GroupMessageReply}
// @Router /group-chat-message-replies/thread/{groupChatMessageId} [get]
func (h *ChatHandler) FindGroupReplyThread(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.threads.FindGroupReplyThread(c.Request.Context(), c.Param("groupChatMessageId"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, res)
}
