package networks

import (
	"strconv"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// GetENSRegistry returns the hex address of the ENS registry deployed on
	// the network, or "" when the network has no name service.
	GetENSRegistry() string

	MarshalJSON() ([]byte, error)
}

// NetworkID is the partition key contacts are stored under: the decimal
// chain id of the network.
func NetworkID(n Network) string {
	return strconv.FormatUint(n.GetChainID(), 10)
}
