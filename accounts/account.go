package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"

	"github.com/tranvictor/jarvis-contacts/logger"
	"github.com/tranvictor/jarvis-contacts/util"
)

type AccDesc struct {
	Address string
	Kind    string
	Keypath string
	Derpath string
	Desc    string
}

// Owned answers whether an address belongs to the wallet itself. Owned
// addresses count as already saved when a contact is added.
type Owned interface {
	Lookup(networkID string, addr common.Address) (AccDesc, bool)
}

// Store reads account records from Dir. Each description is stored in a
// json file whose name is the address and content is the description.
// Accounts are not bound to a network, so networkID is ignored.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) Lookup(networkID string, addr common.Address) (AccDesc, bool) {
	for a, desc := range s.GetAccounts() {
		if strings.EqualFold(a, addr.Hex()) {
			return desc, true
		}
	}
	return AccDesc{}, false
}

func (s *Store) StoreAccountRecord(accDesc AccDesc) error {
	if !util.IsValidAddress(accDesc.Address) {
		return fmt.Errorf("invalid account address %q", accDesc.Address)
	}
	accDesc.Address = util.ChecksumAddress(accDesc.Address)
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s.json", accDesc.Address))
	content, err := json.Marshal(accDesc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

func (s *Store) GetAccount(input string) (AccDesc, error) {
	source := NewFuzzySource(s.GetAccounts())
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), source)
	if len(matches) == 0 {
		return AccDesc{}, fmt.Errorf("No account is found with '%s'", input)
	}
	return source[matches[0].Index], nil
}

// GetAccounts returns a map address -> account description of every
// readable record in Dir. Unreadable records are logged and skipped.
func (s *Store) GetAccounts() map[string]AccDesc {
	result := map[string]AccDesc{}
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		logger.L().Warnw("getting accounts failed", "dir", s.Dir, "error", err)
		return result
	}
	for _, p := range paths {
		addr, err := util.PathToAddress(filepath.Base(p))
		if err != nil {
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			logger.L().Warnw("reading account description failed", "path", p, "error", err)
			continue
		}
		desc := AccDesc{}
		if err := json.Unmarshal(content, &desc); err != nil {
			logger.L().Warnw("decoding account description failed", "path", p, "error", err)
			continue
		}
		result[addr] = desc
	}
	return result
}

// Static is an Owned set for tests, keyed by address in any casing.
type Static map[string]AccDesc

func (s Static) Lookup(networkID string, addr common.Address) (AccDesc, bool) {
	for a, desc := range s {
		if strings.EqualFold(a, addr.Hex()) {
			return desc, true
		}
	}
	return AccDesc{}, false
}
