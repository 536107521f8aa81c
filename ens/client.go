// Package ens resolves ENS names to addresses by reading the registry and
// resolver contracts through a node of the target network. Results are
// never cached: every call asks the chain.
package ens

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/tranvictor/jarvis-contacts/logger"
	"github.com/tranvictor/jarvis-contacts/networks"
)

const TIMEOUT time.Duration = 4 * time.Second

const registryABIJSON = `[{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

const resolverABIJSON = `[{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"addr","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

var (
	ErrUnsupportedNetwork = errors.New("network has no ENS registry")
	ErrNotFound           = errors.New("name does not resolve to an address")

	registryABI = mustParseABI(registryABIJSON)
	resolverABI = mustParseABI(resolverABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

// Dialer connects to a node url.
type Dialer func(ctx context.Context, url string) (ethereum.ContractCaller, error)

func dialEthClient(ctx context.Context, url string) (ethereum.ContractCaller, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", url, err)
	}
	return client, nil
}

// Client resolves names on any network known to the networks package that
// has an ENS registry. Nodes of the network are tried in name order until
// one of them gives a definitive answer.
type Client struct {
	dial    Dialer
	timeout time.Duration

	mu      sync.Mutex
	callers map[string]ethereum.ContractCaller
}

func NewClient() *Client {
	return NewClientWithDialer(dialEthClient)
}

func NewClientWithDialer(dial Dialer) *Client {
	return &Client{
		dial:    dial,
		timeout: TIMEOUT,
		callers: map[string]ethereum.ContractCaller{},
	}
}

// Resolve returns the address name points to on the network with the
// given decimal chain id.
func (c *Client) Resolve(ctx context.Context, name string, networkID string) (common.Address, error) {
	chainID, err := strconv.ParseUint(networkID, 10, 64)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid network id %q: %w", networkID, err)
	}
	network, err := networks.GetNetworkByID(chainID)
	if err != nil {
		return common.Address{}, err
	}
	registry := network.GetENSRegistry()
	if registry == "" {
		return common.Address{}, fmt.Errorf("%s: %w", network.GetName(), ErrUnsupportedNetwork)
	}

	node := NameHash(Normalize(name))
	nodes := network.GetDefaultNodes()
	nodeNames := make([]string, 0, len(nodes))
	for n := range nodes {
		nodeNames = append(nodeNames, n)
	}
	sort.Strings(nodeNames)

	errs := []error{}
	for _, nodeName := range nodeNames {
		caller, err := c.caller(ctx, nodes[nodeName])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", nodeName, err))
			continue
		}
		addr, err := c.resolveWith(ctx, caller, common.HexToAddress(registry), node)
		if err == nil || errors.Is(err, ErrNotFound) {
			return addr, err
		}
		logger.L().Debugw("ens lookup failed on node", "node", nodeName, "name", name, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", nodeName, err))
	}
	if len(errs) == 0 {
		return common.Address{}, fmt.Errorf("%s has no nodes configured", network.GetName())
	}
	return common.Address{}, fmt.Errorf("resolving %s: %w", name, errors.Join(errs...))
}

func (c *Client) caller(ctx context.Context, url string) (ethereum.ContractCaller, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if caller, found := c.callers[url]; found {
		return caller, nil
	}
	caller, err := c.dial(ctx, url)
	if err != nil {
		return nil, err
	}
	c.callers[url] = caller
	return caller, nil
}

func (c *Client) resolveWith(
	ctx context.Context,
	caller ethereum.ContractCaller,
	registry common.Address,
	node common.Hash,
) (common.Address, error) {
	resolver, err := c.callAddress(ctx, caller, registry, registryABI, "resolver", node)
	if err != nil {
		return common.Address{}, err
	}
	if resolver == (common.Address{}) {
		return common.Address{}, ErrNotFound
	}
	addr, err := c.callAddress(ctx, caller, resolver, resolverABI, "addr", node)
	if err != nil {
		return common.Address{}, err
	}
	if addr == (common.Address{}) {
		return common.Address{}, ErrNotFound
	}
	return addr, nil
}

func (c *Client) callAddress(
	ctx context.Context,
	caller ethereum.ContractCaller,
	contract common.Address,
	contractABI abi.ABI,
	method string,
	node common.Hash,
) (common.Address, error) {
	data, err := contractABI.Pack(method, [32]byte(node))
	if err != nil {
		return common.Address{}, err
	}
	timeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := caller.CallContract(timeout, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		return common.Address{}, err
	}
	values, err := contractABI.Unpack(method, out)
	if err != nil {
		return common.Address{}, fmt.Errorf("decoding %s result: %w", method, err)
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s returned %T, not an address", method, values[0])
	}
	return addr, nil
}
