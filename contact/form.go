package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/jarvis-contacts/accounts"
	"github.com/tranvictor/jarvis-contacts/resolver"
	"github.com/tranvictor/jarvis-contacts/util"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

// Form is one add or edit contact session: a name plus an address field
// whose every change is resolved by a resolver.Session.
type Form struct {
	dir     addrbook.Directory
	session *resolver.Session
	name    string
}

// NewAddForm returns an empty form for adding a contact on networkID.
// onChange receives every new address State, see resolver.NewSession.
func NewAddForm(r *resolver.Resolver, dir addrbook.Directory, networkID string, onChange func(resolver.State)) *Form {
	return &Form{
		dir:     dir,
		session: resolver.NewSession(r, networkID, resolver.ModeAdd, onChange),
	}
}

// NewEditForm returns a form prefilled with the contact stored for address.
// When address is not a contact but one of the wallet's own accounts, the
// account description is used as the name.
func NewEditForm(
	ctx context.Context,
	r *resolver.Resolver,
	dir addrbook.Directory,
	owned accounts.Owned,
	networkID string,
	address string,
	onChange func(resolver.State),
) (*Form, error) {
	if !util.IsValidAddress(address) {
		return nil, fmt.Errorf("%q is not a valid address", address)
	}
	addr := common.HexToAddress(address)

	name := ""
	entry, found, err := dir.Lookup(networkID, addr)
	if err != nil {
		return nil, err
	}
	if found {
		name = entry.Name
	} else if owned != nil {
		var acc accounts.AccDesc
		if acc, found = owned.Lookup(networkID, addr); found {
			name = acc.Desc
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", addr.Hex(), ErrContactNotFound)
	}

	f := &Form{
		dir:     dir,
		session: resolver.NewSession(r, networkID, resolver.ModeEdit, onChange),
		name:    name,
	}
	f.SetAddress(ctx, addr.Hex())
	return f, nil
}

func (f *Form) Mode() resolver.Mode {
	return f.session.Mode()
}

func (f *Form) Name() string {
	return f.name
}

func (f *Form) SetName(name string) {
	f.name = name
}

// SetAddress feeds a new address field value to the resolver.
func (f *Form) SetAddress(ctx context.Context, raw string) {
	f.session.Update(ctx, raw)
}

// State returns the latest published address State.
func (f *Form) State() resolver.State {
	return f.session.Latest()
}

// Wait blocks until pending name lookups have finished.
func (f *Form) Wait() {
	f.session.Wait()
}

// Submittable reports whether the form can be submitted: the address is
// ready, there is no error and the name is not blank.
func (f *Form) Submittable() bool {
	st := f.State()
	return st.Ready && st.Err == resolver.ErrNone && strings.TrimSpace(f.name) != ""
}

// Submit waits for pending lookups and commits the contact.
func (f *Form) Submit() (addrbook.ContactEntry, error) {
	f.session.Wait()
	return Commit(f.dir, f.session.NetworkID(), f.State(), f.name)
}

// Close releases the form's pending lookups.
func (f *Form) Close() {
	f.session.Close()
}
