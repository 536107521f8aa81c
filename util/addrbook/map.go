package addrbook

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Map is a lightweight Directory for tests. It maps network id -> address ->
// name. Address keys may use any casing.
//
// Example:
//
//	dir := addrbook.Map{
//	    "1": {"0xd8da6bf26964af9d7eed9e03e53415d37aa96045": "Vitalik Buterin"},
//	}
//
// Map is safe for concurrent lookups but not for writes concurrent with
// anything else.
type Map map[string]map[string]string

func (m Map) Lookup(networkID string, addr common.Address) (ContactEntry, bool, error) {
	for a, name := range m[networkID] {
		if strings.EqualFold(a, addr.Hex()) {
			return ContactEntry{Address: addr, Name: name}, true, nil
		}
	}
	return ContactEntry{}, false, nil
}

func (m Map) Upsert(networkID string, entry ContactEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	book, found := m[networkID]
	if !found {
		book = map[string]string{}
		m[networkID] = book
	}
	for a := range book {
		if strings.EqualFold(a, entry.Address.Hex()) {
			delete(book, a)
		}
	}
	book[entry.Address.Hex()] = entry.Name
	return nil
}

func (m Map) Remove(networkID string, addr common.Address) error {
	for a := range m[networkID] {
		if strings.EqualFold(a, addr.Hex()) {
			delete(m[networkID], a)
		}
	}
	return nil
}

func (m Map) List(networkID string) ([]ContactEntry, error) {
	result := []ContactEntry{}
	for a, name := range m[networkID] {
		result = append(result, ContactEntry{Address: common.HexToAddress(a), Name: name})
	}
	sortEntries(result)
	return result, nil
}

func sortEntries(entries []ContactEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Address.Hex() < entries[j].Address.Hex()
	})
}
