package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

func TestNewCPF_Valid(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"529.982.247-25", "52998224725"},
		{"52998224725", "52998224725"},
		{"111.444.777-35", "11144477735"},
		{"123.456.789-09", "12345678909"},
	}

	for _, tc := range cases {
		cpf, err := domain.NewCPF(tc.input)
		if err != nil {
			t.Fatalf("NewCPF(%q) failed: %v", tc.input, err)
		}
		if cpf.String() != tc.want {
			t.Fatalf("NewCPF(%q) = %q, want %q", tc.input, cpf.String(), tc.want)
		}
		if cpf.IsAnonymous() {
			t.Fatalf("NewCPF(%q) unexpectedly anonymous", tc.input)
		}
	}
}

func TestNewCPF_Anonymous(t *testing.T) {
	cpf, err := domain.NewCPF(domain.AnonymousCPF)
	if err != nil {
		t.Fatalf("anonymous cpf rejected: %v", err)
	}
	if !cpf.IsAnonymous() {
		t.Fatal("expected anonymous cpf")
	}
	if cpf.String() != "00000000000" {
		t.Fatalf("expected digits-only form, got %q", cpf.String())
	}
}

func TestNewCPF_Empty(t *testing.T) {
	_, err := domain.NewCPF("")
	if !errors.Is(err, domain.ErrEmpty) {
		t.Fatalf("expected Empty, got %v", err)
	}
}

func TestNewCPF_Invalid(t *testing.T) {
	cases := []string{
		"529.982.247-24",  // wrong check digit
		"111.444.777-36",  // wrong check digit
		"529.982.247",     // short
		"abc.def.ghi-jk",  // not digits
		"5299822472555",   // too long
		"529-982-247.25",  // wrong separators
		"000.000.000-01",  // near-anonymous, fails check digits
	}

	for _, input := range cases {
		_, err := domain.NewCPF(input)
		if !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("NewCPF(%q): expected Invalid, got %v", input, err)
		}
	}
}

func TestCPF_JSONRoundTrip(t *testing.T) {
	original, err := domain.NewCPF("529.982.247-25")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"52998224725"` {
		t.Fatalf("unexpected wire form: %s", data)
	}

	var decoded domain.CPF
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.String() != original.String() {
		t.Fatalf("round trip changed value: %q != %q", decoded.String(), original.String())
	}
}

func TestCPF_UnmarshalRejectsInvalid(t *testing.T) {
	var decoded domain.CPF
	err := json.Unmarshal([]byte(`"52998224724"`), &decoded)
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
}
