package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	utiljwt "storagebooking/util/jwt"
)

func newController() *Controller {
	return &Controller{
		JWTSecret: "test-secret",
		V:         validator.New(),
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func post(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev-token", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issuedToken(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestDevToken(t *testing.T) {
	c, rec := post(`{"user_id": 42, "role": "admin"}`)
	require.NoError(t, newController().DevToken(c))
	require.Equal(t, http.StatusOK, rec.Code)

	claims, err := utiljwt.ParseAuth("Bearer "+issuedToken(t, rec), "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "admin", claims["role"])
}

func TestDevTokenDefaultsRole(t *testing.T) {
	c, rec := post(`{"user_id": 42}`)
	require.NoError(t, newController().DevToken(c))
	require.Equal(t, http.StatusOK, rec.Code)

	claims, err := utiljwt.ParseAuth("Bearer "+issuedToken(t, rec), "test-secret")
	require.NoError(t, err)
	require.Equal(t, "user", claims["role"])
}

func TestDevTokenRequiresUserID(t *testing.T) {
	c, rec := post(`{"role": "admin"}`)
	require.NoError(t, newController().DevToken(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
