package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionutT77/PourPal/internal/models"
)

// fakeBackend is an in-process stand-in for the PourPal API, close enough
// for exercising the client: cookie session, the chat surfaces and the
// conflict-style error bodies the real backend produces.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := func(c *gin.Context) {
		if _, err := c.Cookie("sessionid"); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Next()
	}

	router.POST("/users/login/", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Password != "hunter22" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.SetCookie("sessionid", "abc123", 3600, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    models.User{ID: 1, Email: req.Email, Username: "ana", FirstName: "Ana"},
		})
	})

	router.POST("/users/register/", func(c *gin.Context) {
		var req Registration
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Password != req.PasswordConfirm {
			c.JSON(http.StatusBadRequest, map[string][]string{
				"password_confirm": {"Passwords do not match."},
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    models.User{ID: 2, Email: req.Email, Username: req.Username},
		})
	})

	router.GET("/users/connections/friends/", authed, func(c *gin.Context) {
		c.JSON(http.StatusOK, []models.User{{ID: 2, Username: "mara"}})
	})

	router.POST("/hangouts/:id/join/", authed, func(c *gin.Context) {
		switch c.Param("id") {
		case "9":
			c.JSON(http.StatusBadRequest, gin.H{"error": "This hangout is full"})
		case "10":
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are already in this hangout"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"message": "Successfully joined hangout",
				"hangout": models.Hangout{ID: 3, Title: "Trivia night", MaxGroupSize: 5},
			})
		}
	})

	router.GET("/hangouts/:id/", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	router.GET("/chat/private/:peer/", authed, func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"id": 11, "sender": 2, "sender_name": "mara", "receiver": 1,
				"message": "see you there", "created_at": "2025-06-01T20:00:00Z"},
			{"id": 12, "sender": 1, "sender_name": "ana", "receiver": 2,
				"message": "on my way", "created_at": "2025-06-01T20:01:00Z"},
		})
	})

	router.POST("/chat/private/send/", authed, func(c *gin.Context) {
		var req struct {
			Receiver int    `json:"receiver"`
			Message  string `json:"message"`
		}
		require.NoError(t, c.ShouldBindJSON(&req))
		c.JSON(http.StatusCreated, gin.H{"message": "sent"})
	})

	router.GET("/chat/private/conversations/", authed, func(c *gin.Context) {
		c.JSON(http.StatusOK, []models.ConversationSummary{
			{PeerID: 2, PeerName: "mara", LastMessage: "see you there", UnreadCount: 3},
		})
	})

	router.POST("/users/profile/photos/", authed, func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image required"})
			return
		}
		c.JSON(http.StatusCreated, models.Upload{
			ID:      7,
			URL:     "/media/profiles/" + file.Filename,
			Caption: c.PostForm("caption"),
		})
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func loggedInClient(t *testing.T) *Client {
	t.Helper()
	srv := fakeBackend(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)
	return client
}

func TestLoginCarriesCookieOnLaterCalls(t *testing.T) {
	client := loggedInClient(t)

	friendsList, err := client.ListFriends(context.Background())
	require.NoError(t, err)
	require.Len(t, friendsList, 1)
	assert.Equal(t, "mara", friendsList[0].Username)
}

func TestUnauthenticatedCallMapsToAuthError(t *testing.T) {
	srv := fakeBackend(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	_, err = client.ListFriends(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuth(err))
}

func TestBadCredentials(t *testing.T) {
	srv := fakeBackend(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsAuth(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestRegisterValidationFields(t *testing.T) {
	srv := fakeBackend(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	_, err = client.Register(context.Background(), Registration{
		Email: "x@example.com", Username: "x", Password: "a", PasswordConfirm: "b",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Fields, "password_confirm")
}

func TestJoinHangoutConflicts(t *testing.T) {
	client := loggedInClient(t)

	_, err := client.JoinHangout(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsConflict(err), "full hangout should map to conflict")

	_, err = client.JoinHangout(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, IsConflict(err), "repeat join should map to conflict")

	hangout, err := client.JoinHangout(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Trivia night", hangout.Title)
}

func TestServerErrorMapsToTransient(t *testing.T) {
	client := loggedInClient(t)

	_, err := client.GetHangout(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestFetchConversationNormalisesWireShape(t *testing.T) {
	client := loggedInClient(t)

	msgs, err := client.FetchConversation(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, 11, msgs[0].ID)
	assert.Equal(t, 2, msgs[0].SenderID)
	assert.Equal(t, "mara", msgs[0].SenderName)
	assert.Equal(t, "see you there", msgs[0].Text)
	assert.Equal(t, 2, msgs[0].ConversationID)
	assert.Equal(t, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC), msgs[0].Timestamp.UTC())
	// Chronological ascending, as delivered.
	assert.True(t, !msgs[1].Timestamp.Before(msgs[0].Timestamp))
}

func TestSendPrivateAndListConversations(t *testing.T) {
	client := loggedInClient(t)

	require.NoError(t, client.SendPrivate(context.Background(), 2, "on my way"))

	convs, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, 3, convs[0].UnreadCount)
}

func TestUploadProfilePhoto(t *testing.T) {
	client := loggedInClient(t)

	stored, err := client.UploadProfilePhoto(context.Background(),
		strings.NewReader("fake-image-bytes"), "me.jpg", "rooftop", 1)
	require.NoError(t, err)
	assert.Equal(t, "/media/profiles/me.jpg", stored.URL)
	assert.Equal(t, "rooftop", stored.Caption)
}
