package telegram

import (
	"testing"

	"github.com/m3rciful/filebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/categories", commands.Command{
		Handler:     noopHandler,
		Description: "List categories",
		AdminOnly:   true,
	})

	if _, _, ok := reg.LookupCommand("/categories"); !ok {
		t.Fatal("expected /categories to be registered")
	}
	if _, _, ok := reg.LookupCommand("categories"); !ok {
		t.Fatal("expected lookup without slash prefix to succeed")
	}
	if _, _, ok := reg.LookupCommand("/missing"); ok {
		t.Fatal("unexpected hit for unregistered command")
	}
}

func TestRegistryLookupStripsArguments(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/upload", commands.Command{
		Handler:     noopHandler,
		Description: "Start an upload session",
		AdminOnly:   true,
	})
	key, _, ok := reg.LookupCommand("/upload ab12cd34")
	if !ok || key != "/upload" {
		t.Fatalf("LookupCommand = (%q, %v), want (/upload, true)", key, ok)
	}
}

func TestRegistryRejectsInvalidCommands(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("nocmd", commands.Command{Handler: noopHandler, Description: "x"})
	reg.RegisterCommand("/empty", commands.Command{Description: "x"})
	if len(reg.Commands()) != 0 {
		t.Fatalf("expected no commands registered, got %d", len(reg.Commands()))
	}
}

func TestRegistryVisibleCommandsExcludeAdmin(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Start"})
	reg.RegisterCommand("/channels", commands.Command{Handler: noopHandler, Description: "Channels", AdminOnly: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible commands = %v", visible)
	}
	if got := len(reg.ListCommands(false)); got != 2 {
		t.Fatalf("all commands = %d, want 2", got)
	}
}

func TestRegistryCallbackDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("check", noopHandler); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.RegisterCallback("check", noopHandler); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if got := reg.ListCallbacks(); len(got) != 1 || got[0] != "check" {
		t.Fatalf("callbacks = %v", got)
	}
}
