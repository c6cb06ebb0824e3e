package rename

import (
	"errors"
	"strings"
	"testing"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         string
		autoPrefixed bool
	}{
		{"bare scope", "acme", "@acme", true},
		{"scoped without at", "mycompany/shopify-app", "@mycompany/shopify-app", true},
		{"already scoped", "@acme/store", "@acme/store", false},
		{"at scope only", "@acme", "@acme", false},
		{"surrounding whitespace", "  acme \n", "@acme", true},
		{"allowed punctuation", "my.app_2~x-y", "@my.app_2~x-y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if got.Value != tt.want {
				t.Errorf("Value = %q, want %q", got.Value, tt.want)
			}
			if got.AutoPrefixed != tt.autoPrefixed {
				t.Errorf("AutoPrefixed = %v, want %v", got.AutoPrefixed, tt.autoPrefixed)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, input := range []string{"acme", "@acme", "mycompany/app", "@mycompany/app"} {
		first, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", input, err)
		}
		second, err := Normalize(first.Value)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", first.Value, err)
		}
		if second.Value != first.Value {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", input, first.Value, second.Value)
		}
		if strings.HasPrefix(second.Value, "@@") {
			t.Errorf("double @ in %q", second.Value)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Normalize(input)
		if !errors.Is(err, shopkit.ErrEmptyName) {
			t.Errorf("Normalize(%q) error = %v, want ErrEmptyName", input, err)
		}
	}
}

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantReason string
	}{
		{"inner space", "My App", "cannot contain spaces"},
		{"tab", "my\tapp", "cannot contain spaces"},
		{"uppercase", "MyApp", "Try: myapp"},
		{"uppercase scoped", "Acme/Store", "Try: acme/store"},
		{"bad character", "acme!", "can only contain"},
		{"leading dot", ".acme", "can only contain"},
		{"trailing slash", "acme/", "can only contain"},
		{"leading slash", "/app", "can only contain"},
		{"two slashes", "a/b/c", "can only contain"},
		{"double at", "@@acme", "can only contain"},
		{"only at", "@", "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if !errors.Is(err, shopkit.ErrInvalidName) {
				t.Fatalf("Normalize(%q) error = %v, want ErrInvalidName", tt.input, err)
			}
			var nameErr *NameError
			if !errors.As(err, &nameErr) {
				t.Fatalf("error %T is not *NameError", err)
			}
			if !strings.Contains(nameErr.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", nameErr.Reason, tt.wantReason)
			}
		})
	}
}

func TestNormalize_WhitespaceCheckedBeforeCase(t *testing.T) {
	_, err := Normalize("My App")
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected *NameError, got %v", err)
	}
	if strings.Contains(nameErr.Reason, "lowercase") {
		t.Errorf("whitespace should be reported first, got %q", nameErr.Reason)
	}
}

func TestName_Packages(t *testing.T) {
	n := Name{Value: "@acme"}
	got := n.Packages()
	want := []string{"@acme/core", "@acme/database", "@acme/shopify-app"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Packages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if n.Scoped() {
		t.Error("bare scope reported as scoped")
	}
	if !(Name{Value: "@acme/store"}).Scoped() {
		t.Error("scoped name not reported as scoped")
	}
}
