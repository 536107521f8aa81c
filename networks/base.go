package networks

var BaseMainnet Network = NewBaseMainnet()

type baseMainnet struct {
	*GenericNetwork
}

func NewBaseMainnet() *baseMainnet {
	return &baseMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "base",
			AlternativeNames: []string{},
			ChainID:          8453,
			NodeVariableName: "BASE_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"public-base": "https://mainnet.base.org",
			},
		}),
	}
}
