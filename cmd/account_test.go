package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tranvictor/jarvis-contacts/accounts"
	"github.com/tranvictor/jarvis-contacts/networks"
	"github.com/tranvictor/jarvis-contacts/ui"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

func TestAddAccountBlocksContact(t *testing.T) {
	store := accounts.NewStore(filepath.Join(t.TempDir(), "jarvis"))
	u := ui.NewRecordingUI("trezor")

	if err := runAddAccount(u, store, strings.ToLower(bob), ""); err != nil {
		t.Fatalf("runAddAccount: %s", err)
	}
	if !u.HasMessage("trezor is now one of your accounts") {
		t.Fatalf("unexpected output %v", u.Entries())
	}

	deps := newContactDeps(addrbook.Map{}, store, nil, networks.EthereumMainnet)
	_, err := runAddContact(context.Background(), ui.NewRecordingUI(), deps, "Bob", bob)
	if err == nil || !strings.Contains(err.Error(), "Address already saved") {
		t.Fatalf("an owned account must not be added as a contact, got %v", err)
	}
}

func TestAddAccountInvalidAddress(t *testing.T) {
	store := accounts.NewStore(t.TempDir())
	if err := runAddAccount(ui.NewRecordingUI(), store, "bob.eth", "bob"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestListAndFindAccounts(t *testing.T) {
	store := accounts.NewStore(t.TempDir())

	u := ui.NewRecordingUI()
	runListAccounts(u, store)
	if !u.HasMessage("No account records") {
		t.Fatalf("unexpected output %v", u.Entries())
	}

	if err := runAddAccount(ui.NewRecordingUI(), store, dave, "cold storage"); err != nil {
		t.Fatal(err)
	}
	if err := runAddAccount(ui.NewRecordingUI(), store, alice, "hot wallet"); err != nil {
		t.Fatal(err)
	}

	u = ui.NewRecordingUI()
	runListAccounts(u, store)
	rows := u.Messages("Table")
	if len(rows) != 2 || rows[0] != "hot wallet | "+alice+" | watch" {
		t.Fatalf("rows = %v", rows)
	}

	u = ui.NewRecordingUI()
	if err := runFindAccount(u, store, "cold"); err != nil {
		t.Fatalf("runFindAccount: %s", err)
	}
	if !u.HasMessage("Address: " + dave) {
		t.Fatalf("unexpected output %v", u.Entries())
	}
}
