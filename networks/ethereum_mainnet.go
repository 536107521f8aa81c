package networks

var EthereumMainnet Network = NewEthereumMainnet()

type ethereumMainnet struct {
	*GenericNetwork
}

func NewEthereumMainnet() *ethereumMainnet {
	return &ethereumMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "mainnet",
			AlternativeNames: []string{"ethereum"},
			ChainID:          1,
			NodeVariableName: "ETHEREUM_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"mainnet-alchemy": "https://eth-mainnet.alchemyapi.io/v2/YP5f6eM2wC9c2nwJfB0DC1LObdSY7Qfv",
				"mainnet-infura":  "https://mainnet.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
			},
			ENSRegistry: ENSRegistryAddress,
		}),
	}
}
