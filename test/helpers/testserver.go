package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artfolio_backend/internal/app"
	"artfolio_backend/internal/config"
	"artfolio_backend/internal/models"

	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer mounts the full router over an in-memory database.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	LoadTestConfig()

	db := NewTestDB(t)
	router := app.SetupRouter(config.AppConfig, db)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, DB: db}
}

// SendRequest performs an HTTP request against the test server and returns
// the response together with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()

	return res, string(resBody)
}

// CreateAndLoginUser creates an active user and logs them in through the API.
func (ts *TestServer) CreateAndLoginUser(t *testing.T, role models.UserRole) (string, *models.User) {
	t.Helper()

	user := CreateTestUser(t, ts.DB, role)

	loginBody := map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}
