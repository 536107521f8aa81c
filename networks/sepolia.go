package networks

var Sepolia Network = NewSepolia()

type sepolia struct {
	*GenericNetwork
}

func NewSepolia() *sepolia {
	return &sepolia{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "sepolia",
			AlternativeNames: []string{},
			ChainID:          11155111,
			NodeVariableName: "ETHEREUM_SEPOLIA_NODE",
			DefaultNodes: map[string]string{
				"sepolia-infura": "https://sepolia.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
			},
			ENSRegistry: ENSRegistryAddress,
		}),
	}
}
