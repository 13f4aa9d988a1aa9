package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"messaging-service/internal/database"
	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/internal/services"
	"messaging-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success           bool            `json:"success"`
	Code              int             `json:"code"`
	Data              json.RawMessage `json:"data"`
	PaginationControl *struct {
		TotalRecords int64 `json:"totalRecords"`
		TotalPages   int   `json:"totalPages"`
		CurrentPage  int   `json:"currentPage"`
		HasNext      bool  `json:"hasNext"`
	} `json:"paginationControl"`
	Error *struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

type fakeUploader struct {
	got  []byte
	name string
	err  error
}

func (u *fakeUploader) Upload(_ context.Context, filename, _ string, r io.Reader, _ int64) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.name = filename
	u.got, _ = io.ReadAll(r)
	return "http://minio.local/chat-media/media/" + filename, nil
}

type fakeOnline []string

func (f fakeOnline) GetOnlineUsers(context.Context) ([]string, error) { return f, nil }

type api struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newAPI(t *testing.T, uploader Uploader) *api {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	msgRepo := postgres.NewMessageRepository(db)
	replyRepo := postgres.NewReplyRepository(db)
	messages := services.NewMessageService(msgRepo, replyRepo, postgres.NewMembershipRepository(db), nil)
	threads := services.NewThreadService(msgRepo, replyRepo)

	chat := NewChatHandler(messages, threads)
	rooms := NewRoomHandler(services.NewRoomService(postgres.NewRoomRepository(db)))
	media := NewMediaHandler(uploader)
	hub := websocket.NewHub("chats", nil, websocket.HubOptions{})
	presence := NewPresenceHandler(fakeOnline{"u2", "u1"}, hub)

	r := gin.New()
	r.POST("/chat-messages", chat.SendChatMessage)
	r.GET("/chat-messages/thread", chat.FindChatThread)
	r.POST("/chat-message-replies", chat.ReplyChatMessage)
	r.GET("/chat-message-replies/thread/:chatMessageId", chat.FindChatReplyThread)
	r.POST("/group-chat-messages", chat.SendGroupMessage)
	r.GET("/group-chat-messages/thread", chat.FindGroupThread)
	r.POST("/group-chat-message-replies", chat.ReplyGroupMessage)
	r.GET("/group-chat-message-replies/thread/:groupChatMessageId", chat.FindGroupReplyThread)
	r.POST("/chat-rooms", rooms.ResolveRoom)
	r.POST("/media", media.Upload)
	r.GET("/presence/online", presence.GetOnlineUsers)
	r.GET("/presence/connections", presence.GetConnections)

	return &api{db: db, engine: r}
}

func (a *api) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestChatMessages(t *testing.T) {
	a := newAPI(t, nil)
	alice, bob := uuid.NewString(), uuid.NewString()

	status, env := a.do(t, http.MethodPost, "/chat-messages", models.SendChatMessageRequest{
		SenderID: alice, ReceiverID: bob, Type: "TEXT", Content: "hi bob",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	first := decode[models.DirectMessage](t, env.Data)
	assert.Equal(t, "hi bob", first.Content)

	_, _ = a.do(t, http.MethodPost, "/chat-messages", models.SendChatMessageRequest{
		SenderID: bob, ReceiverID: alice, Type: "TEXT", Content: "hi alice",
	})

	t.Run("ThreadUnpaginated", func(t *testing.T) {
		status, env := a.do(t, http.MethodGet, "/chat-messages/thread?userId="+bob+"&peerUserId="+alice, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, env.PaginationControl)
		msgs := decode[[]models.DirectMessage](t, env.Data)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hi bob", msgs[0].Content)
		assert.Equal(t, "hi alice", msgs[1].Content)
	})

	t.Run("ThreadPaginated", func(t *testing.T) {
		status, env := a.do(t, http.MethodGet, "/chat-messages/thread?userId="+alice+"&peerUserId="+bob+"&pageNumber=2&pageSize=1", nil)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, env.PaginationControl)
		assert.Equal(t, int64(2), env.PaginationControl.TotalRecords)
		assert.Equal(t, 2, env.PaginationControl.CurrentPage)
		assert.False(t, env.PaginationControl.HasNext)
		msgs := decode[[]models.DirectMessage](t, env.Data)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hi alice", msgs[0].Content)
	})

	t.Run("BadPageNumber", func(t *testing.T) {
		status, env := a.do(t, http.MethodGet, "/chat-messages/thread?userId="+alice+"&peerUserId="+bob+"&pageNumber=two", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "pageNumber", env.Error.Field)
	})

	t.Run("Reply", func(t *testing.T) {
		status, env := a.do(t, http.MethodPost, "/chat-message-replies", models.ReplyChatMessageRequest{
			SenderID: bob, ChatMessageID: first.ID, Type: "TEXT", Content: "reply",
		})
		require.Equal(t, http.StatusCreated, status)
		reply := decode[models.DirectMessageReply](t, env.Data)
		assert.Equal(t, first.ID, reply.ParentMessageID)

		status, env = a.do(t, http.MethodGet, "/chat-message-replies/thread/"+first.ID, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]models.DirectMessageReply](t, env.Data), 1)
	})

	t.Run("ReplyToMissingParent", func(t *testing.T) {
		status, env := a.do(t, http.MethodPost, "/chat-message-replies", models.ReplyChatMessageRequest{
			SenderID: bob, ChatMessageID: uuid.NewString(), Type: "TEXT", Content: "reply",
		})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestSendValidation(t *testing.T) {
	a := newAPI(t, nil)
	alice := uuid.NewString()

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"MissingReceiver", models.SendChatMessageRequest{SenderID: alice, Type: "TEXT", Content: "x"}, "receiverId"},
		{"BlankContent", models.SendChatMessageRequest{SenderID: alice, ReceiverID: uuid.NewString(), Type: "TEXT", Content: "  "}, "content"},
		{"UnknownType", models.SendChatMessageRequest{SenderID: alice, ReceiverID: uuid.NewString(), Type: "VIDEO", Content: "x"}, "type"},
		{"MalformedID", models.SendChatMessageRequest{SenderID: "alice", ReceiverID: uuid.NewString(), Type: "TEXT", Content: "x"}, "senderId"},
		{"NotAnObject", []int{1, 2}, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(t, http.MethodPost, "/chat-messages", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			assert.Equal(t, tt.field, env.Error.Field)
		})
	}
}

func TestGroupMessages(t *testing.T) {
	a := newAPI(t, nil)
	group, member, outsider := uuid.NewString(), uuid.NewString(), uuid.NewString()
	require.NoError(t, a.db.Create(&models.GroupMember{GroupID: group, UserID: member, Status: true}).Error)

	status, env := a.do(t, http.MethodPost, "/group-chat-messages", models.SendGroupChatMessageRequest{
		GroupID: group, SenderID: outsider, Type: "TEXT", Content: "let me in",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, env = a.do(t, http.MethodPost, "/group-chat-messages", models.SendGroupChatMessageRequest{
		GroupID: group, SenderID: member, Type: "TEXT", Content: "hello group",
	})
	require.Equal(t, http.StatusCreated, status)
	text := decode[models.GroupMessage](t, env.Data)

	_, _ = a.do(t, http.MethodPost, "/group-chat-messages", models.SendGroupChatMessageRequest{
		GroupID: group, SenderID: member, Type: "IMAGE", Content: "http://img",
	})

	status, env = a.do(t, http.MethodGet, "/group-chat-messages/thread?groupId="+group+"&type=IMAGE", nil)
	require.Equal(t, http.StatusOK, status)
	images := decode[[]models.GroupMessage](t, env.Data)
	require.Len(t, images, 1)
	assert.Equal(t, models.MessageTypeImage, images[0].Type)

	status, env = a.do(t, http.MethodGet, "/group-chat-messages/thread?groupId="+group+"&type=AUDIO", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "type", env.Error.Field)

	status, _ = a.do(t, http.MethodPost, "/group-chat-message-replies", models.ReplyGroupChatMessageRequest{
		SenderID: member, GroupChatMessageID: text.ID, Type: "TEXT", Content: "thread reply",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = a.do(t, http.MethodGet, "/group-chat-message-replies/thread/"+text.ID+"?pageNumber=1&pageSize=5", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.PaginationControl)
	assert.Equal(t, int64(1), env.PaginationControl.TotalRecords)
}

func TestResolveRoom(t *testing.T) {
	a := newAPI(t, nil)
	alice, bob := uuid.NewString(), uuid.NewString()

	status, env := a.do(t, http.MethodPost, "/chat-rooms", ResolveRoomRequest{UserID: alice, PeerUserID: bob})
	require.Equal(t, http.StatusOK, status)
	first := decode[models.ChatRoom](t, env.Data)

	_, env = a.do(t, http.MethodPost, "/chat-rooms", ResolveRoomRequest{UserID: bob, PeerUserID: alice})
	second := decode[models.ChatRoom](t, env.Data)
	assert.Equal(t, first.RoomID, second.RoomID)

	status, env = a.do(t, http.MethodPost, "/chat-rooms", ResolveRoomRequest{UserID: alice})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "peerUserId", env.Error.Field)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestMediaUpload(t *testing.T) {
	upload := func(a *api, field string) (*httptest.ResponseRecorder, envelope) {
		body, contentType := multipartBody(t, field, "cat.png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/media", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		a.engine.ServeHTTP(w, req)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		return w, env
	}

	t.Run("Stored", func(t *testing.T) {
		up := &fakeUploader{}
		w, env := upload(newAPI(t, up), "file")
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "http://minio.local/chat-media/media/cat.png", decode[MediaResponse](t, env.Data).URL)
		assert.Equal(t, []byte("png-bytes"), up.got)
	})

	t.Run("MissingFile", func(t *testing.T) {
		w, env := upload(newAPI(t, &fakeUploader{}), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "file", env.Error.Field)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		w, _ := upload(newAPI(t, &fakeUploader{err: errors.New("bucket gone")}), "file")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		w, _ := upload(newAPI(t, nil), "file")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestPresence(t *testing.T) {
	a := newAPI(t, nil)

	status, env := a.do(t, http.MethodGet, "/presence/online", nil)
	require.Equal(t, http.StatusOK, status)
	online := decode[OnlineUsersResponse](t, env.Data)
	assert.Equal(t, []string{"u1", "u2"}, online.Users)
	assert.Equal(t, 2, online.Count)

	status, env = a.do(t, http.MethodGet, "/presence/connections", nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[[]NamespaceStats](t, env.Data)
	require.Len(t, stats, 1)
	assert.Equal(t, "chats", stats[0].Namespace)
	assert.Equal(t, 0, stats[0].Connections)
}
