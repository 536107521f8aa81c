package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/net/idna"
)

// AddressLength is the length of a hex address literal including the 0x
// prefix.
const AddressLength = 42

var (
	pathRegexp   = regexp.MustCompile("(0x)?[0-9a-fA-F]{40}")
	ensRegexp    = regexp.MustCompile(`^(?:[a-z0-9](?:[-a-z0-9]*[a-z0-9])?\.)+[a-z0-9][-a-z0-9]*[a-z0-9]$`)
	hexishRegexp = regexp.MustCompile("^0x[0-9a-fA-F]*$")
)

// IsValidAddress reports whether s is a full address literal: a 0x prefix,
// 40 hex digits, and a casing that is either uniform or the EIP-55 checksum
// of the address.
func IsValidAddress(s string) bool {
	if len(s) != AddressLength || !strings.HasPrefix(s, "0x") {
		return false
	}
	if !common.IsHexAddress(s) {
		return false
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

// ChecksumAddress returns the EIP-55 form of a hex address. The input is
// not validated.
func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

// IsENS reports whether s has the shape of a name service domain such as
// "alice.eth". It says nothing about whether the name is registered.
func IsENS(s string) bool {
	if s == "" || !utf8.ValidString(s) || hexishRegexp.MatchString(s) {
		return false
	}
	ascii, err := idna.ToASCII(s)
	if err != nil {
		return false
	}
	ascii = strings.ToLower(ascii)
	i := strings.LastIndex(ascii, ".")
	if i < 1 || i == len(ascii)-1 {
		return false
	}
	return ensRegexp.MatchString(ascii)
}

// PathToAddress extracts the first address found in a path such as
// ~/.jarvis/0xabc...json.
func PathToAddress(path string) (string, error) {
	result := pathRegexp.FindAllString(path, -1)
	if result == nil {
		return "", fmt.Errorf("invalid filename")
	}
	addr := result[0]
	if !strings.HasPrefix(addr, "0x") {
		addr = "0x" + addr
	}
	return addr, nil
}
