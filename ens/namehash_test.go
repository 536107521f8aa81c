package ens_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/jarvis-contacts/ens"
)

func TestNameHash(t *testing.T) {
	cases := map[string]string{
		"":        "0x0000000000000000000000000000000000000000000000000000000000000000",
		"eth":     "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae",
		"foo.eth": "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f",
	}
	for name, want := range cases {
		if got := ens.NameHash(name); got != common.HexToHash(want) {
			t.Errorf("NameHash(%q) = %s, want %s", name, got.Hex(), want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := ens.Normalize("  Foo.ETH "); got != "foo.eth" {
		t.Fatalf("Normalize = %q", got)
	}
	// e + combining acute composes to a single é
	if got := ens.Normalize("cafe\u0301.eth"); got != "caf\u00e9.eth" {
		t.Fatalf("Normalize did not compose: %q", got)
	}
	if ens.NameHash(ens.Normalize("FOO.eth")) != ens.NameHash("foo.eth") {
		t.Fatalf("names differing only in case must share a node")
	}
}
