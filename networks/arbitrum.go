package networks

var ArbitrumMainnet Network = NewArbitrumMainnet()

type arbitrumMainnet struct {
	*GenericNetwork
}

func NewArbitrumMainnet() *arbitrumMainnet {
	return &arbitrumMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "arbitrum",
			AlternativeNames: []string{},
			ChainID:          42161,
			NodeVariableName: "ARBITRUM_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"arbitrum": "https://arb1.arbitrum.io/rpc",
			},
		}),
	}
}
