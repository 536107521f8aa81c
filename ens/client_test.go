package ens

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/jarvis-contacts/networks"
)

var (
	testResolver = common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
	vitalik      = common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
)

// fakeChain answers the registry and resolver calls from two maps keyed
// by node.
type fakeChain struct {
	resolvers map[common.Hash]common.Address
	addrs     map[common.Hash]common.Address
	err       error
	calls     int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		resolvers: map[common.Hash]common.Address{},
		addrs:     map[common.Hash]common.Address{},
	}
}

func (f *fakeChain) register(name string, addr common.Address) {
	node := NameHash(name)
	f.resolvers[node] = testResolver
	f.addrs[node] = addr
}

func (f *fakeChain) CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(msg.Data) != 36 {
		return nil, fmt.Errorf("unexpected calldata length %d", len(msg.Data))
	}
	node := common.BytesToHash(msg.Data[4:])
	switch {
	case bytes.Equal(msg.Data[:4], registryABI.Methods["resolver"].ID):
		if *msg.To != common.HexToAddress(networks.ENSRegistryAddress) {
			return nil, fmt.Errorf("resolver() called on %s", msg.To.Hex())
		}
		return registryABI.Methods["resolver"].Outputs.Pack(f.resolvers[node])
	case bytes.Equal(msg.Data[:4], resolverABI.Methods["addr"].ID):
		if *msg.To != f.resolvers[node] {
			return nil, fmt.Errorf("addr() called on %s", msg.To.Hex())
		}
		return resolverABI.Methods["addr"].Outputs.Pack(f.addrs[node])
	}
	return nil, fmt.Errorf("unexpected selector %x", msg.Data[:4])
}

// staticDialer hands out chain for every url and counts dials.
func staticDialer(chain ethereum.ContractCaller, dials *int) Dialer {
	return func(ctx context.Context, url string) (ethereum.ContractCaller, error) {
		*dials++
		return chain, nil
	}
}

func TestResolveReadsRegistryThenResolver(t *testing.T) {
	t.Setenv("ETHEREUM_MAINNET_NODE", "")
	chain := newFakeChain()
	chain.register("vitalik.eth", vitalik)
	dials := 0
	c := NewClientWithDialer(staticDialer(chain, &dials))

	got, err := c.Resolve(context.Background(), "Vitalik.ETH", "1")
	if err != nil {
		t.Fatalf("Resolve: %s", err)
	}
	if got != vitalik {
		t.Fatalf("Resolve = %s, want %s", got.Hex(), vitalik.Hex())
	}
	if chain.calls != 2 {
		t.Fatalf("expected 2 contract calls, got %d", chain.calls)
	}

	if _, err := c.Resolve(context.Background(), "vitalik.eth", "1"); err != nil {
		t.Fatalf("second Resolve: %s", err)
	}
	if dials != 1 {
		t.Fatalf("node should be dialed once, dialed %d times", dials)
	}
	if chain.calls != 4 {
		t.Fatalf("results must not be cached, got %d calls", chain.calls)
	}
}

func TestResolveUnregisteredName(t *testing.T) {
	t.Setenv("ETHEREUM_MAINNET_NODE", "")
	chain := newFakeChain()
	dials := 0
	c := NewClientWithDialer(staticDialer(chain, &dials))

	_, err := c.Resolve(context.Background(), "nobody.eth", "1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if chain.calls != 1 {
		t.Fatalf("a missing resolver is definitive, expected 1 call, got %d", chain.calls)
	}
}

func TestResolveZeroAddressIsNotFound(t *testing.T) {
	t.Setenv("ETHEREUM_MAINNET_NODE", "")
	chain := newFakeChain()
	chain.register("empty.eth", common.Address{})
	dials := 0
	c := NewClientWithDialer(staticDialer(chain, &dials))

	if _, err := c.Resolve(context.Background(), "empty.eth", "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveFallsBackToNextNode(t *testing.T) {
	t.Setenv("ETHEREUM_MAINNET_NODE", "")
	nodes := networks.EthereumMainnet.GetDefaultNodes()
	broken := newFakeChain()
	broken.err = errors.New("connection reset")
	working := newFakeChain()
	working.register("vitalik.eth", vitalik)

	c := NewClientWithDialer(func(ctx context.Context, url string) (ethereum.ContractCaller, error) {
		if url == nodes["mainnet-alchemy"] {
			return broken, nil
		}
		return working, nil
	})

	got, err := c.Resolve(context.Background(), "vitalik.eth", "1")
	if err != nil {
		t.Fatalf("Resolve: %s", err)
	}
	if got != vitalik {
		t.Fatalf("Resolve = %s", got.Hex())
	}
	if broken.calls != 1 || working.calls != 2 {
		t.Fatalf("calls: broken %d, working %d", broken.calls, working.calls)
	}
}

func TestResolveAllNodesFail(t *testing.T) {
	t.Setenv("ETHEREUM_MAINNET_NODE", "")
	c := NewClientWithDialer(func(ctx context.Context, url string) (ethereum.ContractCaller, error) {
		return nil, errors.New("dial refused")
	})

	_, err := c.Resolve(context.Background(), "vitalik.eth", "1")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("node failures must not look like an unregistered name: %s", err)
	}
	for _, node := range []string{"mainnet-alchemy", "mainnet-infura"} {
		if !strings.Contains(err.Error(), node) {
			t.Errorf("error %q does not mention %s", err, node)
		}
	}
}

func TestResolveNetworkErrors(t *testing.T) {
	dials := 0
	c := NewClientWithDialer(staticDialer(newFakeChain(), &dials))

	if _, err := c.Resolve(context.Background(), "vitalik.eth", "56"); !errors.Is(err, ErrUnsupportedNetwork) {
		t.Errorf("bsc: expected ErrUnsupportedNetwork, got %v", err)
	}
	if _, err := c.Resolve(context.Background(), "vitalik.eth", "424242"); !errors.Is(err, networks.ErrNetworkNotFound) {
		t.Errorf("unknown chain: expected ErrNetworkNotFound, got %v", err)
	}
	if _, err := c.Resolve(context.Background(), "vitalik.eth", "mainnet"); err == nil {
		t.Errorf("a non numeric network id should fail")
	}
	if dials != 0 {
		t.Errorf("no node should be dialed, dialed %d", dials)
	}
}
