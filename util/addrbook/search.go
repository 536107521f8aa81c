package addrbook

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxSearchResults = 10

type FuzzySource []ContactEntry

func (self FuzzySource) Len() int {
	return len(self)
}

func (self FuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", strings.Replace(self[i].Name, " ", "_", -1), self[i].Address.Hex())
}

// Search returns at most 10 contacts of the network whose name or address
// fuzzily matches input, best match first, with their scores.
func Search(dir Directory, networkID string, input string) ([]ContactEntry, []int, error) {
	entries, err := dir.List(networkID)
	if err != nil {
		return nil, nil, err
	}
	source := FuzzySource(entries)
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), source)
	result := []ContactEntry{}
	scores := []int{}
	for i := 0; i < maxSearchResults && i < len(matches); i++ {
		result = append(result, source[matches[i].Index])
		scores = append(scores, matches[i].Score)
	}
	return result, scores, nil
}
