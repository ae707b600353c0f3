package links

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		dialCode string
		local    string
		message  string
		want     string
	}{
		{"us plain", "+1", "5551234567", "Hi", "https://wa.me/15551234567?text=Hi"},
		{"formatted local", "+1", "(555) 123-4567", "Hi", "https://wa.me/15551234567?text=Hi"},
		{"empty message", "+44", "7400 123456", "", "https://wa.me/447400123456?text="},
		{"message with spaces", "+55", "(11) 91234-5678", "Olá, tudo bem?", "https://wa.me/5511912345678?text=Ol%C3%A1%2C%20tudo%20bem%3F"},
		{"three digits minimum", "+351", "123", "x", "https://wa.me/351123?text=x"},
		{"dial code without plus", "49", "1512", "", "https://wa.me/491512?text="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.dialCode, tt.local, tt.message)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_Rejected(t *testing.T) {
	for _, local := range []string{"", "1", "12", "(1) 2", "abc"} {
		t.Run(local, func(t *testing.T) {
			got, err := Build("+1", local, "Hi")
			if !errors.Is(err, ErrInvalidNumber) {
				t.Errorf("Build(%q) error = %v, want ErrInvalidNumber", local, err)
			}
			if got != "" {
				t.Errorf("Build(%q) = %q, want no link", local, got)
			}
		})
	}
}

func TestBuild_PathAndQueryDecode(t *testing.T) {
	link, err := Build("+1", "5551234567", "Hi")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	if u.Host != "wa.me" {
		t.Errorf("host = %q, want wa.me", u.Host)
	}
	if got := strings.TrimPrefix(u.Path, "/"); got != "15551234567" {
		t.Errorf("path = %q, want 15551234567", got)
	}
	if got := u.Query().Get("text"); got != "Hi" {
		t.Errorf("text = %q, want Hi", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a, _ := Build("+33", "6 12 34 56 78", "Bonjour !")
	b, _ := Build("+33", "6 12 34 56 78", "Bonjour !")
	if a != b {
		t.Errorf("Build() not deterministic: %q != %q", a, b)
	}
}

func TestBuild_MessageRoundTrip(t *testing.T) {
	messages := []string{
		"Hello world",
		"50% off & free shipping?",
		"line one\nline two",
		"emoji 👋 and accents é",
		"a+b=c #tag",
	}
	for _, msg := range messages {
		link, err := Build("+1", "5551234567", msg)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("url.Parse(%q) error = %v", link, err)
		}
		if got := u.Query().Get("text"); got != msg {
			t.Errorf("decoded text = %q, want %q", got, msg)
		}
	}
}

func TestQRCodeURL(t *testing.T) {
	link := "https://wa.me/15551234567?text=Hi%20there"
	got := QRCodeURL(link)
	want := "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=https%3A%2F%2Fwa.me%2F15551234567%3Ftext%3DHi%2520there&bgcolor=ffffff"
	if got != want {
		t.Errorf("QRCodeURL() = %q, want %q", got, want)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	if u.Query().Get("data") != link {
		t.Errorf("data = %q, want %q", u.Query().Get("data"), link)
	}
}

func TestShare(t *testing.T) {
	link := "https://wa.me/15551234567?text=Hi"
	enc := "https%3A%2F%2Fwa.me%2F15551234567%3Ftext%3DHi"

	s := Share(link)
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"whatsapp", s.WhatsApp, "https://wa.me/?text=" + enc},
		{"facebook", s.Facebook, "https://www.facebook.com/sharer/sharer.php?u=" + enc},
		{"twitter", s.Twitter, "https://twitter.com/intent/tweet?url=" + enc + "&text=Check%20this%20out"},
		{"email", s.Email, "mailto:?subject=WhatsApp%20Link&body=" + enc},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFlagURL(t *testing.T) {
	if got := FlagURL("BR"); got != "https://flagcdn.com/w40/br.png" {
		t.Errorf("FlagURL(BR) = %q", got)
	}
}

func TestNewBuilder(t *testing.T) {
	b := NewBuilder("chat.example.com/", "https://qr.example.com/render", "https://flags.example.com")
	link, err := b.Build("+1", "555", "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if link != "https://chat.example.com/1555?text=" {
		t.Errorf("Build() = %q", link)
	}
	if got := b.FlagURL("us"); got != "https://flags.example.com/us.png" {
		t.Errorf("FlagURL() = %q", got)
	}
	if got := b.QRCodeURL("x"); got != "https://qr.example.com/render?size=200x200&data=x&bgcolor=ffffff" {
		t.Errorf("QRCodeURL() = %q", got)
	}

	if d := NewBuilder("", "", ""); d != Default() {
		t.Errorf("NewBuilder with empty args = %+v, want defaults", d)
	}
}
