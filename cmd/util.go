package cmd

import (
	"fmt"
	"strings"

	"github.com/tranvictor/jarvis-contacts/accounts"
	"github.com/tranvictor/jarvis-contacts/config"
	"github.com/tranvictor/jarvis-contacts/ens"
	"github.com/tranvictor/jarvis-contacts/networks"
	"github.com/tranvictor/jarvis-contacts/resolver"
	"github.com/tranvictor/jarvis-contacts/ui"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

// contactDeps is everything a contact command works with. Tests build one
// around addrbook.Map, accounts.Static and a fake name resolver.
type contactDeps struct {
	dir       addrbook.Directory
	owned     accounts.Owned
	resolver  *resolver.Resolver
	network   networks.Network
	networkID string
	close     func() error
}

func newContactDeps(
	dir addrbook.Directory,
	owned accounts.Owned,
	names resolver.NameResolver,
	network networks.Network,
) *contactDeps {
	return &contactDeps{
		dir:       dir,
		owned:     owned,
		resolver:  resolver.New(names, dir, owned),
		network:   network,
		networkID: networks.NetworkID(network),
		close:     func() error { return nil },
	}
}

// openContactDeps wires the production stores for the current network.
func openContactDeps() (*contactDeps, error) {
	dir, err := addrbook.OpenBoltDirectory(config.DBPath)
	if err != nil {
		return nil, err
	}
	deps := newContactDeps(
		dir,
		accounts.NewStore(config.AccountsDir),
		ens.NewClient(),
		networks.CurrentNetwork(),
	)
	deps.close = dir.Close
	return deps, nil
}

func errorKindStyle(st resolver.State) ui.StyledText {
	switch {
	case st.Err != resolver.ErrNone:
		return ui.StyledText{Text: st.Err.Message(), Severity: ui.SeverityError}
	case st.Ready:
		return ui.StyledText{Text: "ready", Severity: ui.SeveritySuccess}
	}
	return ui.StyledText{Text: "incomplete", Severity: ui.SeverityWarn}
}

// renderState shows one published resolution State. It is the onChange
// callback of interactive forms.
func renderState(u ui.UI, st resolver.State) {
	switch {
	case st.Err != resolver.ErrNone:
		u.Error("%s", st.Err.Message())
	case st.Ready && st.ENSName != "":
		u.Interpret(fmt.Sprintf("%s (%s)", st.Address, st.ENSName))
	case st.Ready:
		u.Interpret(st.Address)
	case strings.TrimSpace(st.Input) != "":
		u.Warn("Not an address or ENS name yet, keep typing")
	}
}

func stateRows(u ui.UI, st resolver.State) [][2]string {
	ensName := st.ENSName
	if ensName == "" {
		ensName = "-"
	}
	address := st.Address
	if address == "" {
		address = "-"
	}
	return [][2]string{
		{"Input", st.Input},
		{"Network", st.NetworkID},
		{"Mode", st.Mode.String()},
		{"Address", address},
		{"ENS", ensName},
		{"Status", u.Style(errorKindStyle(st))},
	}
}
