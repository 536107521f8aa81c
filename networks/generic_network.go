package networks

import (
	"encoding/json"
	"os"
	"strings"
)

// ENSRegistryAddress is the ENS registry address shared by mainnet and the
// public Ethereum testnets.
const ENSRegistryAddress = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

type GenericNetworkConfig struct {
	Name             string            `json:"name"`
	AlternativeNames []string          `json:"alternative_names"`
	ChainID          uint64            `json:"chain_id"`
	NodeVariableName string            `json:"node_variable_name"`
	DefaultNodes     map[string]string `json:"default_nodes"`
	ENSRegistry      string            `json:"ens_registry,omitempty"`
}

// GenericNetwork is a network fully described by its config. Every built-in
// network and every custom network loaded from disk is one of these.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

// GetDefaultNodes returns the configured nodes plus the node set in the
// network's env var, if any, under the name "custom-node".
func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	result := map[string]string{}
	for name, url := range gn.config.DefaultNodes {
		result[name] = url
	}
	if gn.config.NodeVariableName != "" {
		customNode := strings.Trim(os.Getenv(gn.config.NodeVariableName), " ")
		if customNode != "" {
			result["custom-node"] = customNode
		}
	}
	return result
}

func (gn *GenericNetwork) GetENSRegistry() string {
	return gn.config.ENSRegistry
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}

func (gn *GenericNetwork) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &gn.config)
}
