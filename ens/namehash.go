package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases and NFC normalizes an ENS name so that names typed
// differently hash to the same node.
func Normalize(name string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
}

// NameHash computes the EIP-137 node of an already normalized name.
func NameHash(name string) common.Hash {
	node := common.Hash{}
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256Hash([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), labelHash.Bytes())
	}
	return node
}
