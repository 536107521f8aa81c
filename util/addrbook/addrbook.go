// Package addrbook stores contacts: human-readable names for addresses,
// partitioned by network id.
//
// Production code uses [BoltDirectory], a bbolt file with one bucket per
// network. Tests inject [Map], a plain nested map with no disk access.
//
// Entries are always keyed by the EIP-55 checksum form of the address, never
// by the text the user typed or the ENS name it resolved from.
package addrbook

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
)

// MaxNameLength bounds a contact's display name.
const MaxNameLength = 64

var validate = validator.New()

type ContactEntry struct {
	Address common.Address `json:"address"`
	Name    string         `json:"name" validate:"required,max=64"`
}

// Validate checks the entry can be stored.
func (e ContactEntry) Validate() error {
	if e.Address == (common.Address{}) {
		return fmt.Errorf("contact %q: zero address", e.Name)
	}
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("contact %s: %w", e.Address.Hex(), err)
	}
	return nil
}

// Directory is the contact store.
//
// Contract:
//   - Upsert on an existing address overwrites its name; it never creates a
//     second entry.
//   - Remove of an unknown address returns nil.
//   - Lookup reports found=false, not an error, for unknown addresses.
type Directory interface {
	Lookup(networkID string, addr common.Address) (entry ContactEntry, found bool, err error)
	Upsert(networkID string, entry ContactEntry) error
	Remove(networkID string, addr common.Address) error
	// List returns every entry of the network ordered by name.
	List(networkID string) ([]ContactEntry, error)
}
