package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/jarvis-contacts/accounts"
	"github.com/tranvictor/jarvis-contacts/config"
	"github.com/tranvictor/jarvis-contacts/ui"
)

var accountDesc string

func runAddAccount(u ui.UI, store *accounts.Store, address, desc string) error {
	if strings.TrimSpace(desc) == "" {
		u.Info("Description of %s", address)
		answer, err := u.Ask(nonBlank)
		if err != nil {
			return fmt.Errorf("input closed before a description was entered: %w", err)
		}
		desc = answer
	}
	acc := accounts.AccDesc{
		Address: address,
		Kind:    "watch",
		Desc:    strings.TrimSpace(desc),
	}
	if err := store.StoreAccountRecord(acc); err != nil {
		return err
	}
	u.Success("%s is now one of your accounts. It can't be added as a contact.", acc.Desc)
	return nil
}

func runListAccounts(u ui.UI, store *accounts.Store) {
	accs := store.GetAccounts()
	if len(accs) == 0 {
		u.Info("No account records in %s", store.Dir)
		return
	}
	addrs := make([]string, 0, len(accs))
	for a := range accs {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	rows := [][]string{}
	for _, a := range addrs {
		rows = append(rows, []string{accs[a].Desc, a, accs[a].Kind})
	}
	u.Table([]string{"Description", "Address", "Kind"}, rows)
}

func runFindAccount(u ui.UI, store *accounts.Store, query string) error {
	acc, err := store.GetAccount(query)
	if err != nil {
		return err
	}
	u.KeyValue([][2]string{
		{"Description", acc.Desc},
		{"Address", acc.Address},
		{"Kind", acc.Kind},
	})
	return nil
}

var addAccountCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Record an address as one of your own accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddAccount(ui.NewTerminalUI(), accounts.NewStore(config.AccountsDir), strings.TrimSpace(args[0]), accountDesc)
	},
}

var listAccountCmd = &cobra.Command{
	Use:   "list",
	Short: "List your own accounts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runListAccounts(ui.NewTerminalUI(), accounts.NewStore(config.AccountsDir))
	},
}

var findAccountCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find one of your accounts by description or address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFindAccount(ui.NewTerminalUI(), accounts.NewStore(config.AccountsDir), strings.Join(args, " "))
	},
}

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"acc"},
	Short:   "Manage the records of your own accounts",
}

func init() {
	addAccountCmd.Flags().StringVarP(&accountDesc, "desc", "d", "", "account description")

	accountCmd.AddCommand(addAccountCmd)
	accountCmd.AddCommand(listAccountCmd)
	accountCmd.AddCommand(findAccountCmd)
	rootCmd.AddCommand(accountCmd)
}
