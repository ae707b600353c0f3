package platform

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func newTestApp(handler func(a *HTMX) error) *fiber.App {
	app := fiber.New()
	app.Post("/", func(c fiber.Ctx) error {
		if err := handler(NewHTMX(c)); err != nil {
			return c.Status(fiber.StatusConflict).SendString(err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestHTMX_PrefersDark(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"dark", "dark", true},
		{"quoted dark", `"dark"`, true},
		{"light", "light", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			app := newTestApp(func(a *HTMX) error {
				got = a.PrefersDark()
				return nil
			})

			req, _ := http.NewRequest("POST", "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderColorScheme, tt.header)
			}
			if _, err := app.Test(req); err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PrefersDark() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTMX_WriteClipboardTriggersEvent(t *testing.T) {
	app := newTestApp(func(a *HTMX) error {
		return a.WriteClipboard(t.Context(), "https://wa.me/15551234567?text=Hi")
	})

	req, _ := http.NewRequest("POST", "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var events map[string]map[string]string
	if err := json.Unmarshal([]byte(resp.Header.Get("HX-Trigger")), &events); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}
	if got := events[EventCopy]["text"]; got != "https://wa.me/15551234567?text=Hi" {
		t.Errorf("copy text = %q", got)
	}
}

func TestHTMX_Share(t *testing.T) {
	data := ShareData{Title: "WhatsApp Link", Text: "Check out this WhatsApp link!", URL: "https://wa.me/1555"}

	t.Run("unsupported without capability header", func(t *testing.T) {
		var shareErr error
		app := newTestApp(func(a *HTMX) error {
			shareErr = a.Share(t.Context(), data)
			return nil
		})
		req, _ := http.NewRequest("POST", "/", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if !errors.Is(shareErr, ErrShareUnsupported) {
			t.Errorf("Share() error = %v, want ErrShareUnsupported", shareErr)
		}
		if resp.Header.Get("HX-Trigger") != "" {
			t.Error("unexpected HX-Trigger header")
		}
	})

	t.Run("supported", func(t *testing.T) {
		app := newTestApp(func(a *HTMX) error {
			return a.Share(t.Context(), data)
		})
		req, _ := http.NewRequest("POST", "/", nil)
		req.Header.Set(HeaderShareCapable, "true")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}

		var events map[string]ShareData
		if err := json.Unmarshal([]byte(resp.Header.Get("HX-Trigger")), &events); err != nil {
			t.Fatalf("HX-Trigger is not JSON: %v", err)
		}
		if events[EventShare] != data {
			t.Errorf("share event = %+v, want %+v", events[EventShare], data)
		}
	})
}

func TestHTMX_EventsMerge(t *testing.T) {
	app := newTestApp(func(a *HTMX) error {
		if err := a.WriteClipboard(t.Context(), "https://wa.me/1555"); err != nil {
			return err
		}
		return a.ApplyTheme("dark")
	})

	req, _ := http.NewRequest("POST", "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var events map[string]json.RawMessage
	if err := json.Unmarshal([]byte(resp.Header.Get("HX-Trigger")), &events); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}
	if _, ok := events[EventCopy]; !ok {
		t.Error("copy event lost after a second trigger")
	}
	if string(events[EventTheme]) != `"dark"` {
		t.Errorf("theme event = %s", events[EventTheme])
	}
}

func TestNop(t *testing.T) {
	var a Adapter = Nop{}
	if a.PrefersDark() {
		t.Error("Nop prefers dark")
	}
	if err := a.Share(t.Context(), ShareData{}); !errors.Is(err, ErrShareUnsupported) {
		t.Errorf("Share() error = %v", err)
	}
	if err := a.WriteClipboard(t.Context(), "x"); err == nil {
		t.Error("WriteClipboard() returned nil")
	}
}
