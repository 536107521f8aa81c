package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/jarvis-contacts/accounts"
	"github.com/tranvictor/jarvis-contacts/contact"
	"github.com/tranvictor/jarvis-contacts/networks"
	"github.com/tranvictor/jarvis-contacts/resolver"
	"github.com/tranvictor/jarvis-contacts/ui"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

const (
	alice = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	bob   = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	carol = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	dave  = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
)

type fakeNames map[string]string

func (f fakeNames) Resolve(ctx context.Context, name string, networkID string) (common.Address, error) {
	addr, found := f[name]
	if !found {
		return common.Address{}, errors.New("not registered")
	}
	return common.HexToAddress(addr), nil
}

// newTestDeps is a mainnet book with Carol saved and Dave as an owned
// account.
func newTestDeps() (*contactDeps, addrbook.Map) {
	dir := addrbook.Map{"1": {carol: "Carol"}}
	owned := accounts.Static{dave: {Address: dave, Desc: "my ledger"}}
	names := fakeNames{
		"alice.eth": alice,
		"carol.eth": carol,
	}
	return newContactDeps(dir, owned, names, networks.EthereumMainnet), dir
}

func TestAddContactFromArguments(t *testing.T) {
	deps, dir := newTestDeps()
	u := ui.NewRecordingUI()

	entry, err := runAddContact(context.Background(), u, deps, "Alice", strings.ToLower(alice))
	if err != nil {
		t.Fatalf("runAddContact: %s", err)
	}
	if entry.Address.Hex() != alice || dir["1"][alice] != "Alice" {
		t.Fatalf("entry %+v, directory %v", entry, dir)
	}
	if !u.HasMessage("Saved " + alice) {
		t.Fatalf("missing confirmation in %v", u.Entries())
	}
}

func TestAddContactInteractive(t *testing.T) {
	deps, dir := newTestDeps()
	u := ui.NewRecordingUI(
		"Alice",
		"0x12",
		"0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"nobody.eth",
		"carol.eth",
		"alice.eth",
	)

	if _, err := runAddContact(context.Background(), u, deps, "", ""); err != nil {
		t.Fatalf("runAddContact: %s", err)
	}

	if got := u.Messages("Warn"); len(got) != 1 || !strings.Contains(got[0], "keep typing") {
		t.Fatalf("Warn = %v", got)
	}
	want := []string{"Invalid address", "Couldn't resolve ENS name", "Address already saved"}
	if got := u.Messages("Error"); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Error = %v, want %v", got, want)
	}
	if got := u.Messages("Interpret"); len(got) != 1 || got[0] != alice+" (alice.eth)" {
		t.Fatalf("Interpret = %v", got)
	}
	if got := u.Messages("Spinner"); len(got) != 3 {
		t.Fatalf("expected a spinner per name lookup, got %v", got)
	}
	if dir["1"][alice] != "Alice" || len(dir["1"]) != 2 {
		t.Fatalf("unexpected directory %v", dir)
	}
}

func TestAddContactRefusesDuplicates(t *testing.T) {
	for _, input := range []string{carol, "carol.eth", dave} {
		deps, dir := newTestDeps()
		u := ui.NewRecordingUI()
		_, err := runAddContact(context.Background(), u, deps, "Again", input)
		if err == nil || !strings.Contains(err.Error(), "Address already saved") {
			t.Fatalf("%s: expected already saved, got %v", input, err)
		}
		if len(dir["1"]) != 1 || dir["1"][carol] != "Carol" {
			t.Fatalf("%s: directory changed: %v", input, dir)
		}
	}
}

func TestAddContactIncompleteArgument(t *testing.T) {
	deps, dir := newTestDeps()
	_, err := runAddContact(context.Background(), ui.NewRecordingUI(), deps, "Alice", "0x5aAeb")
	if err == nil || !strings.Contains(err.Error(), "neither an address nor an ENS name") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(dir["1"]) != 1 {
		t.Fatalf("directory changed: %v", dir)
	}
}

func TestAddContactStopsWhenInputEnds(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "before a name was entered"},
		{"Bob\n", "before a valid address was entered"},
		{"Bob\n0x12\n", "before a valid address was entered"},
		{"Bob\n   \n", "before a valid address was entered"},
		{"Bob\nnobody.eth\n", "before a valid address was entered"},
	}
	for _, c := range cases {
		deps, dir := newTestDeps()
		u := ui.NewTerminalUIWithIO(&bytes.Buffer{}, strings.NewReader(c.input))
		_, err := runAddContact(context.Background(), u, deps, "", "")
		if !errors.Is(err, io.EOF) || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%q: expected %q, got %v", c.input, c.want, err)
		}
		if len(dir["1"]) != 1 {
			t.Fatalf("%q: directory changed: %v", c.input, dir)
		}
	}
}

func TestEditContactRename(t *testing.T) {
	deps, dir := newTestDeps()
	u := ui.NewRecordingUI()

	entry, err := runEditContact(context.Background(), u, deps, strings.ToLower(carol), "Carol D.", "", false)
	if err != nil {
		t.Fatalf("runEditContact: %s", err)
	}
	if entry.Name != "Carol D." || len(dir["1"]) != 1 || dir["1"][carol] != "Carol D." {
		t.Fatalf("entry %+v, directory %v", entry, dir)
	}
	if !u.HasMessage("Name: Carol") || !u.HasMessage("Address: "+carol) {
		t.Fatalf("current values not shown: %v", u.Entries())
	}
}

func TestEditContactMovesToNewAddress(t *testing.T) {
	deps, dir := newTestDeps()

	entry, err := runEditContact(context.Background(), ui.NewRecordingUI(), deps, carol, "", "alice.eth", false)
	if err != nil {
		t.Fatalf("runEditContact: %s", err)
	}
	if entry.Address.Hex() != alice || entry.Name != "Carol" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if len(dir["1"]) != 1 || dir["1"][alice] != "Carol" {
		t.Fatalf("the old address should be gone: %v", dir)
	}
}

func TestEditContactInteractive(t *testing.T) {
	deps, dir := newTestDeps()
	u := ui.NewRecordingUI("Caroline", "")

	if _, err := runEditContact(context.Background(), u, deps, carol, "", "", false); err != nil {
		t.Fatalf("runEditContact: %s", err)
	}
	if len(dir["1"]) != 1 || dir["1"][carol] != "Caroline" {
		t.Fatalf("unexpected directory %v", dir)
	}
	if len(u.Messages("Error")) != 0 {
		t.Fatalf("editing must not report the contact as a duplicate of itself: %v", u.Messages("Error"))
	}
}

func TestEditContactInteractiveRetriesAddress(t *testing.T) {
	deps, dir := newTestDeps()
	u := ui.NewRecordingUI("", "nobody.eth", bob)

	if _, err := runEditContact(context.Background(), u, deps, carol, "", "", false); err != nil {
		t.Fatalf("runEditContact: %s", err)
	}
	if got := u.Messages("Error"); len(got) != 1 || got[0] != "Couldn't resolve ENS name" {
		t.Fatalf("Error = %v", got)
	}
	if len(dir["1"]) != 1 || dir["1"][bob] != "Carol" {
		t.Fatalf("unexpected directory %v", dir)
	}
}

func TestEditContactOwnedAccount(t *testing.T) {
	deps, dir := newTestDeps()
	entry, err := runEditContact(context.Background(), ui.NewRecordingUI(), deps, dave, "Ledger", "", false)
	if err != nil {
		t.Fatalf("runEditContact: %s", err)
	}
	if entry.Name != "Ledger" || dir["1"][dave] != "Ledger" {
		t.Fatalf("entry %+v, directory %v", entry, dir)
	}
}

func TestEditContactUnknown(t *testing.T) {
	deps, _ := newTestDeps()
	_, err := runEditContact(context.Background(), ui.NewRecordingUI(), deps, bob, "Bob", "", false)
	if !errors.Is(err, contact.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestEditContactStopsWhenInputEnds(t *testing.T) {
	deps, dir := newTestDeps()
	_, err := runEditContact(context.Background(), ui.NewRecordingUI("Caroline"), deps, carol, "", "", false)
	if !errors.Is(err, ui.ErrInputClosed) || !strings.Contains(err.Error(), "before a valid address was entered") {
		t.Fatalf("unexpected error %v", err)
	}
	if dir["1"][carol] != "Carol" {
		t.Fatalf("directory changed: %v", dir)
	}
}

func TestEditContactOntoSavedAddress(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		deps, dir := newTestDeps()
		dir["1"][alice] = "Alice"
		u := ui.NewRecordingUI("n")

		if _, err := runEditContact(context.Background(), u, deps, carol, "", "alice.eth", false); err != nil {
			t.Fatalf("runEditContact: %s", err)
		}
		if got := u.Messages("Confirm"); len(got) != 1 || !strings.Contains(got[0], `already saved as "Alice"`) {
			t.Fatalf("Confirm = %v", got)
		}
		if dir["1"][alice] != "Alice" || dir["1"][carol] != "Carol" {
			t.Fatalf("declining must leave both contacts: %v", dir)
		}
		if !u.HasMessage("Nothing changed") {
			t.Fatalf("missing notice in %v", u.Entries())
		}
	})

	t.Run("accepted", func(t *testing.T) {
		deps, dir := newTestDeps()
		dir["1"][alice] = "Alice"

		entry, err := runEditContact(context.Background(), ui.NewRecordingUI("y"), deps, carol, "", "alice.eth", false)
		if err != nil {
			t.Fatalf("runEditContact: %s", err)
		}
		if entry.Name != "Carol" || len(dir["1"]) != 1 || dir["1"][alice] != "Carol" {
			t.Fatalf("entry %+v, directory %v", entry, dir)
		}
	})

	t.Run("forced", func(t *testing.T) {
		deps, dir := newTestDeps()
		dir["1"][alice] = "Alice"
		u := ui.NewRecordingUI()

		if _, err := runEditContact(context.Background(), u, deps, carol, "", alice, true); err != nil {
			t.Fatalf("runEditContact: %s", err)
		}
		if len(u.Messages("Confirm")) != 0 {
			t.Fatalf("forced edit must not ask: %v", u.Entries())
		}
		if got := u.Messages("Warn"); len(got) != 1 || !strings.Contains(got[0], `Replacing "Alice"`) {
			t.Fatalf("Warn = %v", got)
		}
		if len(dir["1"]) != 1 || dir["1"][alice] != "Carol" {
			t.Fatalf("unexpected directory %v", dir)
		}
	})
}

func TestResolveCommand(t *testing.T) {
	deps, _ := newTestDeps()

	u := ui.NewRecordingUI()
	st := runResolve(context.Background(), u, deps, "carol.eth", resolver.ModeAdd)
	if st.Err != resolver.ErrAlreadySaved {
		t.Fatalf("unexpected state %+v", st)
	}
	for _, want := range []string{"Input: carol.eth", "Network: 1", "Mode: add", "Address: " + carol, "ENS: carol.eth", "Status: Address already saved"} {
		if !u.HasMessage(want) {
			t.Errorf("missing %q in %v", want, u.Messages("KeyValue"))
		}
	}

	u = ui.NewRecordingUI()
	runResolve(context.Background(), u, deps, carol, resolver.ModeEdit)
	if !u.HasMessage("Status: ready") || !u.HasMessage("ENS: -") {
		t.Fatalf("unexpected rows %v", u.Messages("KeyValue"))
	}

	u = ui.NewRecordingUI()
	runResolve(context.Background(), u, deps, "0x5", resolver.ModeAdd)
	if !u.HasMessage("Status: incomplete") || !u.HasMessage("Address: -") {
		t.Fatalf("unexpected rows %v", u.Messages("KeyValue"))
	}
}

func TestListContacts(t *testing.T) {
	deps, dir := newTestDeps()
	dir["1"][alice] = "Alice"

	u := ui.NewRecordingUI()
	if err := runList(u, deps, false); err != nil {
		t.Fatalf("runList: %s", err)
	}
	rows := u.Messages("Table")
	if len(rows) != 2 || rows[0] != "1 | Alice | "+alice || rows[1] != "2 | Carol | "+carol {
		t.Fatalf("rows = %v", rows)
	}

	u = ui.NewRecordingUI()
	if err := runList(u, deps, true); err != nil {
		t.Fatalf("runList json: %s", err)
	}
	decoded := []addrbook.ContactEntry{}
	if err := json.Unmarshal([]byte(u.Output()), &decoded); err != nil {
		t.Fatalf("output is not json: %s\n%s", err, u.Output())
	}
	if len(decoded) != 2 || decoded[0].Address.Hex() != alice {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestListContactsEmptyNetwork(t *testing.T) {
	deps := newContactDeps(addrbook.Map{}, nil, nil, networks.Sepolia)
	u := ui.NewRecordingUI()
	if err := runList(u, deps, false); err != nil {
		t.Fatalf("runList: %s", err)
	}
	if !u.HasMessage("No contacts on sepolia") {
		t.Fatalf("unexpected output %v", u.Entries())
	}
}

func TestFindContacts(t *testing.T) {
	deps, dir := newTestDeps()
	dir["1"][alice] = "Alice"

	u := ui.NewRecordingUI()
	if err := runFind(u, deps, "Car"); err != nil {
		t.Fatalf("runFind: %s", err)
	}
	rows := u.Messages("Table")
	if len(rows) != 1 || !strings.HasSuffix(rows[0], "| Carol | "+carol) {
		t.Fatalf("rows = %v", rows)
	}

	u = ui.NewRecordingUI()
	if err := runFind(u, deps, "zzz"); err != nil {
		t.Fatalf("runFind: %s", err)
	}
	if len(u.Messages("Warn")) != 1 {
		t.Fatalf("expected a warning, got %v", u.Entries())
	}
}

func TestRemoveContact(t *testing.T) {
	deps, dir := newTestDeps()

	if err := runRemove(ui.NewRecordingUI("n"), deps, carol, false); err != nil {
		t.Fatalf("runRemove: %s", err)
	}
	if dir["1"][carol] != "Carol" {
		t.Fatalf("declined removal removed the contact")
	}

	if err := runRemove(ui.NewRecordingUI("y"), deps, strings.ToLower(carol), false); err != nil {
		t.Fatalf("runRemove: %s", err)
	}
	if len(dir["1"]) != 0 {
		t.Fatalf("contact still there: %v", dir)
	}

	if err := runRemove(ui.NewRecordingUI(), deps, carol, true); !errors.Is(err, contact.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if err := runRemove(ui.NewRecordingUI(), deps, "carol.eth", true); err == nil {
		t.Fatalf("rm takes an address")
	}
}

func TestRemoveContactForced(t *testing.T) {
	deps, dir := newTestDeps()
	if err := runRemove(ui.NewRecordingUI(), deps, carol, true); err != nil {
		t.Fatalf("runRemove: %s", err)
	}
	if len(dir["1"]) != 0 {
		t.Fatalf("contact still there: %v", dir)
	}
}
