package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateToken("user-1", "customer")
	assert.Error(t, err)
}

func TestAuthMiddlewareRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString("userId"),
			"role":   c.GetString("role"),
		})
	})

	token, err := GenerateToken("user-1", "staff")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15550001111", "15550001111", "+1 (555) 000-1111"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{"", "0123456", "phone", "+1234567890123456"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), "expected %q to be invalid", phone)
	}
}
