package middleware

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"walink/internal/generator"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)
	app.Use(Device)

	app.Get("/device", func(c fiber.Ctx) error {
		return c.SendString(DeviceID(c))
	})
	app.Post("/form", func(c fiber.Ctx) error {
		SaveForm(c, generator.Form{CountryCode: "BR", LocalNumber: "(11) 9", Message: "Oi"})
		return c.SendString("ok")
	})
	app.Get("/form", func(c fiber.Ctx) error {
		form := LoadForm(c)
		return c.SendString(form.CountryCode + "|" + form.LocalNumber + "|" + form.Message)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, cookies []*http.Cookie) (string, []*http.Cookie) {
	t.Helper()
	req, _ := http.NewRequest(method, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s status = %d", method, path, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(resp.Cookies()) > 0 {
		cookies = resp.Cookies()
	}
	return string(body), cookies
}

func TestDevice_AssignsStableID(t *testing.T) {
	app := newTestApp()

	first, cookies := do(t, app, "GET", "/device", nil)
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("device id %q is not a uuid: %v", first, err)
	}

	second, _ := do(t, app, "GET", "/device", cookies)
	if second != first {
		t.Errorf("device id changed across requests: %q then %q", first, second)
	}
}

func TestDevice_NewVisitorsGetDistinctIDs(t *testing.T) {
	app := newTestApp()

	a, _ := do(t, app, "GET", "/device", nil)
	b, _ := do(t, app, "GET", "/device", nil)
	if a == b {
		t.Errorf("two fresh visitors share device id %q", a)
	}
}

func TestFormRoundTrip(t *testing.T) {
	app := newTestApp()

	empty, cookies := do(t, app, "GET", "/form", nil)
	if empty != "||" {
		t.Errorf("fresh form = %q, want empty", empty)
	}

	_, cookies = do(t, app, "POST", "/form", cookies)
	got, _ := do(t, app, "GET", "/form", cookies)
	if !strings.HasPrefix(got, "BR|(11) 9|Oi") {
		t.Errorf("restored form = %q", got)
	}
}

func TestDeviceID_OutsideMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("[" + DeviceID(c) + "]")
	})

	req, _ := http.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "[]" {
		t.Errorf("DeviceID = %q, want empty", body)
	}
}
