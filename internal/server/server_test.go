package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walink/internal/config"
	"walink/internal/generator"
	"walink/internal/middleware"
	"walink/internal/testutil"
)

// newSessionServer builds the production middleware stack on miniredis with
// two routes that read and write the device's session state.
func newSessionServer(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()

	storage, mr := testutil.TestStorage(t)
	srv := New(&config.Config{
		Env:           "development",
		BaseURL:       "http://localhost:3000",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
	}, storage)

	srv.App.Post("/form", middleware.Device, func(c fiber.Ctx) error {
		middleware.SaveForm(c, generator.Form{
			CountryCode: c.FormValue("country"),
			LocalNumber: c.FormValue("phone"),
		})
		return c.SendString(middleware.DeviceID(c))
	})
	srv.App.Get("/form", middleware.Device, func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"device": middleware.DeviceID(c),
			"form":   middleware.LoadForm(c),
		})
	})
	return srv, mr
}

type sessionReply struct {
	Device string         `json:"device"`
	Form   generator.Form `json:"form"`
}

// replay sends req with jar and merges any cookies the response sets.
func replay(t *testing.T, srv *Server, req *http.Request, jar map[string]*http.Cookie) []byte {
	t.Helper()
	for _, ck := range jar {
		req.AddCookie(ck)
	}
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	for _, ck := range resp.Cookies() {
		jar[ck.Name] = ck
	}
	return body
}

func getForm(t *testing.T, srv *Server, jar map[string]*http.Cookie) sessionReply {
	t.Helper()
	req, _ := http.NewRequest("GET", "/form", nil)
	var out sessionReply
	require.NoError(t, json.Unmarshal(replay(t, srv, req, jar), &out))
	return out
}

func TestDeviceSessionSurvivesEncryptedCookies(t *testing.T) {
	srv, mr := newSessionServer(t)
	jar := map[string]*http.Cookie{}

	req, _ := http.NewRequest("POST", "/form", strings.NewReader("country=BR&phone=(11)%2098765-4321"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	device := string(replay(t, srv, req, jar))

	_, err := uuid.Parse(device)
	require.NoError(t, err, "device id %q", device)
	require.NotEmpty(t, jar, "no session cookie set")
	for _, ck := range jar {
		assert.NotContains(t, ck.Value, device, "cookie %s is not encrypted", ck.Name)
	}

	// Several replays of the encrypted cookie keep the same session.
	for i := 0; i < 3; i++ {
		got := getForm(t, srv, jar)
		assert.Equal(t, device, got.Device, "round trip %d", i)
		assert.Equal(t, "BR", got.Form.CountryCode, "round trip %d", i)
		assert.Equal(t, "(11) 98765-4321", got.Form.LocalNumber, "round trip %d", i)
	}

	// The cookie only names the session; its data lives in storage.
	mr.FlushAll()
	got := getForm(t, srv, jar)
	assert.NotEqual(t, device, got.Device)
	assert.Empty(t, got.Form.CountryCode)
}

func TestDeviceSessionWithoutCookie(t *testing.T) {
	srv, _ := newSessionServer(t)

	first := getForm(t, srv, map[string]*http.Cookie{})
	second := getForm(t, srv, map[string]*http.Cookie{})

	_, err := uuid.Parse(first.Device)
	require.NoError(t, err)
	assert.NotEqual(t, first.Device, second.Device)
	assert.Equal(t, generator.Form{}, second.Form)
}

func TestDeviceSessionTamperedCookie(t *testing.T) {
	srv, _ := newSessionServer(t)
	jar := map[string]*http.Cookie{}

	req, _ := http.NewRequest("POST", "/form", strings.NewReader("country=GB&phone=7400"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	device := string(replay(t, srv, req, jar))

	tampered := map[string]*http.Cookie{}
	for name, ck := range jar {
		forged := *ck
		forged.Value = "not-" + ck.Value
		tampered[name] = &forged
	}

	got := getForm(t, srv, tampered)
	assert.NotEqual(t, device, got.Device)
	assert.Empty(t, got.Form.CountryCode)
}
