// Package resolver turns what a user types into the address field of a
// contact form into a State: a checksum address ready to be saved, an
// error to show, or nothing yet while the user is still typing.
package resolver

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/jarvis-contacts/accounts"
	"github.com/tranvictor/jarvis-contacts/logger"
	"github.com/tranvictor/jarvis-contacts/util"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

// NameResolver maps a name service label to an address on a network.
// Implementations return an error, or the zero address, when the name
// doesn't resolve.
type NameResolver interface {
	Resolve(ctx context.Context, name string, networkID string) (common.Address, error)
}

var errNoNameResolver = errors.New("no name resolver configured")

// InputKind is the syntactic class of an input, decided without any I/O.
type InputKind uint8

const (
	// KindIncomplete: too short to judge, the user is still typing.
	KindIncomplete InputKind = iota
	KindAddress
	KindName
	// KindInvalid: address length reached but not a valid address.
	KindInvalid
)

// Classify applies the ordered syntactic checks: address literal first,
// then name shape, then length.
func Classify(raw string) InputKind {
	switch {
	case util.IsValidAddress(raw):
		return KindAddress
	case util.IsENS(raw):
		return KindName
	case len(raw) >= util.AddressLength:
		return KindInvalid
	}
	return KindIncomplete
}

type Resolver struct {
	names NameResolver
	dir   addrbook.Directory
	owned accounts.Owned
}

func New(names NameResolver, dir addrbook.Directory, owned accounts.Owned) *Resolver {
	return &Resolver{
		names: names,
		dir:   dir,
		owned: owned,
	}
}

// Resolve computes the State for raw. It blocks only when raw is a name
// and the NameResolver has to be asked. The returned State has Seq 0;
// Session assigns sequence numbers.
func (r *Resolver) Resolve(ctx context.Context, raw string, networkID string, mode Mode) State {
	st := State{
		NetworkID: networkID,
		Mode:      mode,
		Input:     raw,
	}

	switch Classify(raw) {
	case KindAddress:
		st.Address = util.ChecksumAddress(raw)
		st.Ready = true
	case KindName:
		addr, err := r.resolveName(ctx, raw, networkID)
		if err != nil || addr == (common.Address{}) {
			logger.L().Warnw("ens lookup failed",
				"name", raw, "network", networkID, "error", err)
			st.Err = ErrNameResolutionFailed
			return st
		}
		st.Address = addr.Hex()
		st.ENSName = raw
		st.Ready = true
	case KindInvalid:
		st.Err = ErrInvalidAddressFormat
		return st
	default:
		return st
	}

	if r.alreadySaved(networkID, mode, st.Addr()) {
		st.Err = ErrAlreadySaved
		st.Ready = false
	}
	return st
}

func (r *Resolver) resolveName(ctx context.Context, name string, networkID string) (common.Address, error) {
	if r.names == nil {
		return common.Address{}, errNoNameResolver
	}
	return r.names.Resolve(ctx, name, networkID)
}

// alreadySaved is the duplicate check. When editing, the contact being
// edited is expected to match itself, so the check is skipped.
func (r *Resolver) alreadySaved(networkID string, mode Mode, addr common.Address) bool {
	if mode != ModeAdd {
		return false
	}
	if r.dir != nil {
		_, found, err := r.dir.Lookup(networkID, addr)
		if err != nil {
			logger.L().Warnw("contact lookup failed, treating address as new",
				"address", addr.Hex(), "network", networkID, "error", err)
		} else if found {
			return true
		}
	}
	if r.owned != nil {
		if _, found := r.owned.Lookup(networkID, addr); found {
			return true
		}
	}
	return false
}
