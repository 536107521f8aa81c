// Package contact saves resolved addresses as contacts and drives the
// add/edit contact form built around a resolver.Session.
package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tranvictor/jarvis-contacts/logger"
	"github.com/tranvictor/jarvis-contacts/resolver"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

var (
	ErrNotReady        = errors.New("contact address is not ready to be saved")
	ErrEmptyName       = errors.New("contact name is empty")
	ErrNetworkMismatch = errors.New("address was resolved on another network")
	ErrContactNotFound = errors.New("no contact or account with this address")
)

// Commit stores a contact for the resolved address of state under name.
// The entry is keyed by the checksum address, never by the typed input or
// ENS name, and committing the same address again only renames it.
// Nothing is written when state isn't ready or name is blank.
func Commit(dir addrbook.Directory, networkID string, state resolver.State, name string) (addrbook.ContactEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return addrbook.ContactEntry{}, ErrEmptyName
	}
	if state.Err != resolver.ErrNone {
		return addrbook.ContactEntry{}, fmt.Errorf("%w: %s", ErrNotReady, state.Err.Message())
	}
	if !state.Ready || state.Address == "" {
		return addrbook.ContactEntry{}, ErrNotReady
	}
	if state.NetworkID != networkID {
		return addrbook.ContactEntry{}, fmt.Errorf(
			"%w: resolved on %s, saving on %s", ErrNetworkMismatch, state.NetworkID, networkID,
		)
	}

	entry := addrbook.ContactEntry{
		Address: state.Addr(),
		Name:    name,
	}
	if err := dir.Upsert(networkID, entry); err != nil {
		return addrbook.ContactEntry{}, fmt.Errorf("saving contact %s: %w", entry.Address.Hex(), err)
	}
	logger.L().Infow("contact saved",
		"mode", state.Mode.String(), "network", networkID,
		"address", entry.Address.Hex(), "ens", state.ENSName)
	return entry, nil
}
