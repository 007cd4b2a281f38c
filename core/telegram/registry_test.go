package telegram

import (
	"testing"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegisterCommandValidation(t *testing.T) {
	reg := NewRegistry()

	reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"})
	if len(reg.Commands()) != 0 {
		t.Fatal("command without slash prefix registered")
	}

	reg.RegisterCommand("/start", commands.Command{Description: "x"})
	if len(reg.Commands()) != 0 {
		t.Fatal("command without handler registered")
	}

	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Browse listings"})
	if len(reg.Commands()) != 1 {
		t.Fatal("valid command not registered")
	}

	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})
	if got := reg.Commands()["/start"].Description; got != "Browse listings" {
		t.Fatalf("duplicate overwrote original: %q", got)
	}
}

func TestLookupCommandAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/favorites", commands.Command{
		Handler:     noop,
		Description: "View your saved listings",
		Aliases:     []string{"favs"},
	})

	key, _, ok := reg.LookupCommand("/favorites")
	if !ok || key != "/favorites" {
		t.Fatalf("direct lookup failed: %q %v", key, ok)
	}
	key, _, ok = reg.LookupCommand("favs")
	if !ok || key != "/favorites" {
		t.Fatalf("alias lookup failed: %q %v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("/missing"); ok {
		t.Fatal("lookup of unknown command succeeded")
	}
}

func TestListCommandsFiltersHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Browse listings"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "internal", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible commands = %+v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 2 {
		t.Fatalf("all commands = %+v", all)
	}
}

func TestCallbackRegistration(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterCallback("savefav", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("savefav", noop); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if err := reg.RegisterCallback("", noop); err == nil {
		t.Fatal("empty key accepted")
	}

	if _, ok := reg.GetCallback("savefav"); !ok {
		t.Fatal("registered callback not found")
	}
	if _, ok := reg.GetCallback("unknown"); ok {
		t.Fatal("unknown callback found")
	}

	keys := reg.ListCallbacks()
	if len(keys) != 1 || keys[0] != "savefav" {
		t.Fatalf("ListCallbacks = %v", keys)
	}
}
