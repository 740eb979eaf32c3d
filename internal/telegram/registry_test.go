package telegram

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryLookupByLabel(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/profile", Command{
		Handler:     noop,
		Description: "profile",
		Label:       "👤 مشاهده پروفایل",
	})

	key, _, ok := reg.LookupCommand("👤 مشاهده پروفایل")
	if !ok || key != "/profile" {
		t.Fatalf("label lookup failed: %q %v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("profile"); !ok {
		t.Fatalf("bare name lookup failed")
	}
	if _, _, ok := reg.LookupCommand("/nope"); ok {
		t.Fatalf("unknown command should not resolve")
	}
}

func TestRegistryRejectsInvalidCommands(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("start", Command{Handler: noop, Description: "no slash"})
	reg.RegisterCommand("/start", Command{Description: "nil handler"})
	if len(reg.Commands()) != 0 {
		t.Fatalf("invalid commands must be skipped, have %d", len(reg.Commands()))
	}

	reg.RegisterCommand("/start", Command{Handler: noop, Description: "ok"})
	reg.RegisterCommand("/start", Command{Handler: noop, Description: "duplicate"})
	if len(reg.Commands()) != 1 {
		t.Fatalf("duplicate registration must be ignored")
	}
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("reg_confirm", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("reg_confirm", noop); err == nil {
		t.Fatalf("duplicate callback key must error")
	}
	if _, ok := reg.GetCallback("reg_confirm"); !ok {
		t.Fatalf("callback lookup failed")
	}

	hidden := reg.ListCommands(true)
	if len(hidden) != 0 {
		t.Fatalf("no visible commands expected, got %d", len(hidden))
	}
}

func TestListCommandsFiltersAdminAndHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", Command{Handler: noop, Description: "start"})
	reg.RegisterCommand("/addevent", Command{Handler: noop, Description: "add", AdminOnly: true})
	reg.RegisterCommand("/cancel", Command{Handler: noop, Description: "cancel", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("expected only /start visible, got %+v", visible)
	}
	if len(reg.ListCommands(false)) != 3 {
		t.Fatalf("expected all commands unfiltered")
	}
}
