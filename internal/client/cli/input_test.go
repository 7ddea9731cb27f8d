package cli

import (
	"bytes"
	"errors"
	"testing"
)

func TestPromptToken(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("  eyJ.token  "), nil
	}

	var out bytes.Buffer
	got, err := PromptToken(&out)
	if err != nil || got != "eyJ.token" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Enter access token: \n" {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestPromptToken_Empty(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("\n"), nil }

	var out bytes.Buffer
	if _, err := PromptToken(&out); err == nil {
		t.Fatal("expected error")
	}
}

func TestPromptToken_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := PromptToken(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}
