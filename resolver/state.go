package resolver

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Mode selects between adding a new contact and editing an existing one.
type Mode uint8

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return ModeAdd, nil
	case "edit":
		return ModeEdit, nil
	}
	return 0, fmt.Errorf("invalid mode %q, valid values are add and edit", s)
}

// ErrorKind is the reason an input can't be saved yet. Resolution never
// fails with an error value, it reports one of these in the State.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	// ErrInvalidAddressFormat: the input is as long as an address but is
	// not a valid hex or checksum address.
	ErrInvalidAddressFormat
	// ErrNameResolutionFailed: the input looks like an ENS name but doesn't
	// resolve to any address.
	ErrNameResolutionFailed
	// ErrAlreadySaved: the address is already a contact or one of the
	// wallet's own accounts. Only reported when adding.
	ErrAlreadySaved
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrInvalidAddressFormat:
		return "invalid_address_format"
	case ErrNameResolutionFailed:
		return "name_resolution_failed"
	case ErrAlreadySaved:
		return "already_saved"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Message is the text shown to the user for the error.
func (k ErrorKind) Message() string {
	switch k {
	case ErrInvalidAddressFormat:
		return "Invalid address"
	case ErrNameResolutionFailed:
		return "Couldn't resolve ENS name"
	case ErrAlreadySaved:
		return "Address already saved"
	}
	return ""
}

// State is the outcome of resolving one input. A State is never modified
// after it is produced; every new input produces a new State.
//
// Invariants:
//   - Ready implies Address != "" and Err == ErrNone.
//   - ENSName is set only when Input was a name, and then equals Input.
type State struct {
	// Seq orders states of one Session. Later inputs get larger numbers.
	Seq       uint64
	NetworkID string
	Mode      Mode
	Input     string
	// Address is the EIP-55 checksum form of the resolved address, or "".
	Address string
	ENSName string
	Err     ErrorKind
	Ready   bool
}

// Addr returns Address as a common.Address. It is the zero address when
// nothing was resolved.
func (s State) Addr() common.Address {
	if s.Address == "" {
		return common.Address{}
	}
	return common.HexToAddress(s.Address)
}

// Display is what the address field shows: the ENS name when there is one,
// otherwise the resolved address, otherwise the raw input.
func (s State) Display() string {
	if s.ENSName != "" {
		return s.ENSName
	}
	if s.Address != "" {
		return s.Address
	}
	return s.Input
}
