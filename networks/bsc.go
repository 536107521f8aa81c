package networks

var BSCMainnet Network = NewBSCMainnet()

type bscMainnet struct {
	*GenericNetwork
}

func NewBSCMainnet() *bscMainnet {
	return &bscMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "bsc",
			AlternativeNames: []string{},
			ChainID:          56,
			NodeVariableName: "BSC_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"binance":  "https://bsc-dataseed.binance.org",
				"defibit":  "https://bsc-dataseed1.defibit.io",
				"ninicoin": "https://bsc-dataseed1.ninicoin.io",
			},
		}),
	}
}
