package networks

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tranvictor/jarvis-contacts/logger"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	Holesky,
	BSCMainnet,
	Matic,
	OptimismMainnet,
	ArbitrumMainnet,
	BaseMainnet,
}

// CustomNetworksDir holds one json file per user defined network.
var CustomNetworksDir = filepath.Join(getHomeDir(), ".jarvis", "networks")

var (
	registryOnce            sync.Once
	globalSupportedNetworks *networks
)

var ErrNetworkNotFound = fmt.Errorf("network not found")

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return usr.HomeDir
}

// registry loads the built-in and custom networks on first use, so that
// problems with custom network files are logged by the configured logger.
func registry() *networks {
	registryOnce.Do(func() {
		globalSupportedNetworks = newSupportedNetworks()
	})
	return globalSupportedNetworks
}

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) add(network Network) {
	n.networks[network.GetName()] = network
	n.networksByID[network.GetChainID()] = network
	for _, an := range network.GetAlternativeNames() {
		n.networks[an] = network
	}
}

func newSupportedNetworks() *networks {
	result := networks{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
		for _, name := range names {
			if _, found := result.networks[name]; found {
				panic(
					fmt.Errorf("network with name or alternative name of '%s' already exists", name),
				)
			}
		}
		result.add(n)
	}

	customNetworks, err := loadCustomNetworks(CustomNetworksDir)
	if err != nil {
		logger.L().Warnw("failed to load custom networks, continuing with built-in networks",
			"dir", CustomNetworksDir, "error", err)
		return &result
	}

	for _, n := range customNetworks {
		if _, found := result.networks[n.GetName()]; found {
			logger.L().Infow("custom network overrides a built-in one", "name", n.GetName())
		}
		if _, found := result.networksByID[n.GetChainID()]; found {
			logger.L().Infow("custom network overrides a built-in one", "chain_id", n.GetChainID())
		}
		result.add(n)
	}
	return &result
}

func loadCustomNetworks(dir string) ([]Network, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			logger.L().Warnw("ignoring invalid custom network", "file", file, "error", err)
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config has no name")
	}
	if networkConfig.ChainID == 0 {
		return nil, fmt.Errorf("network config '%s' has no chain id", networkConfig.Name)
	}
	return NewGenericNetwork(networkConfig), nil
}

// GetSupportedNetworks returns every distinct network, ordered by chain id.
func GetSupportedNetworks() []Network {
	res := []Network{}
	for _, n := range registry().networksByID {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].GetChainID() < res[j].GetChainID()
	})
	return res
}

func GetNetwork(name string) (Network, error) {
	return registry().getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return registry().getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return registry().getSupportedNetworkNames()
}

// AddNetwork registers network for this process and stores it under
// CustomNetworksDir so later runs pick it up.
func AddNetwork(network Network) error {
	for _, an := range network.GetAlternativeNames() {
		if existing, found := registry().networks[an]; found &&
			existing.GetChainID() != network.GetChainID() {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", an)
		}
	}
	registry().add(network)

	if err := os.MkdirAll(CustomNetworksDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", CustomNetworksDir, err)
	}

	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}

	err = os.WriteFile(filepath.Join(CustomNetworksDir, fmt.Sprintf("%s.json", network.GetName())), content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}
	return nil
}
