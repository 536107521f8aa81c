package networks

var Holesky Network = NewHolesky()

type holesky struct {
	*GenericNetwork
}

func NewHolesky() *holesky {
	return &holesky{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:             "holesky",
			AlternativeNames: []string{},
			ChainID:          17000,
			NodeVariableName: "ETHEREUM_HOLESKY_NODE",
			DefaultNodes: map[string]string{
				"publicnode": "https://ethereum-holesky-rpc.publicnode.com",
			},
			ENSRegistry: ENSRegistryAddress,
		}),
	}
}
