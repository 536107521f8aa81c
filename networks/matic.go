package networks

var Matic Network = NewMatic()

type maticMainnet struct {
	*GenericNetwork
}

func NewMatic() *maticMainnet {
	return &maticMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "matic",
			AlternativeNames: []string{"polygon"},
			ChainID:          137,
			NodeVariableName: "MATIC_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"polygon": "https://polygon-rpc.com",
			},
		}),
	}
}
