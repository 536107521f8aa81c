package networks

import (
	"sync"

	"github.com/tranvictor/jarvis-contacts/logger"
)

var (
	cachedNetwork Network
	mu            sync.Mutex
)

func CurrentNetwork() Network {
	mu.Lock()
	n := cachedNetwork
	mu.Unlock()
	if n != nil {
		return n
	}

	SetNetwork(NetworkString)

	mu.Lock()
	defer mu.Unlock()
	return cachedNetwork
}

// SetNetwork switches the current network. Unknown names fall back to
// mainnet.
func SetNetwork(networkStr string) {
	mu.Lock()
	defer mu.Unlock()

	inited := cachedNetwork != nil

	n, err := GetNetwork(networkStr)
	if err != nil {
		logger.L().Warnw("unknown network, falling back to mainnet", "network", networkStr)
		n = EthereumMainnet
	}
	cachedNetwork = n
	if inited {
		logger.L().Infow("switched network", "network", n.GetName(), "chain_id", n.GetChainID())
	} else {
		logger.L().Debugw("network selected", "network", n.GetName(), "chain_id", n.GetChainID())
	}
}

var NetworkString string
