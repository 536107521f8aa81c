package networks

var OptimismMainnet Network = NewOptimismMainnet()

type optimismMainnet struct {
	*GenericNetwork
}

func NewOptimismMainnet() *optimismMainnet {
	return &optimismMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "optimism",
			AlternativeNames: []string{},
			ChainID:          10,
			NodeVariableName: "OPTIMISM_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"optimism": "https://mainnet.optimism.io",
			},
		}),
	}
}
