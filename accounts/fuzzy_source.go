package accounts

import (
	"fmt"
	"sort"
	"strings"
)

type FuzzySource []AccDesc

func (self FuzzySource) Len() int {
	return len(self)
}

func (self FuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", self[i].Address, strings.Replace(self[i].Desc, " ", "_", -1))
}

func NewFuzzySource(accounts map[string]AccDesc) FuzzySource {
	result := FuzzySource{}
	for _, acc := range accounts {
		result = append(result, acc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Address < result[j].Address
	})
	return result
}
