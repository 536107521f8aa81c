// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/jarvis-contacts/config"
	"github.com/tranvictor/jarvis-contacts/logger"
	"github.com/tranvictor/jarvis-contacts/networks"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jarvis-contacts",
	Short: "Keep a book of named addresses for every EVM network you use",
	Long: `jarvis-contacts manages the contacts of your wallet: human readable names for
addresses, kept separately for every network.

A contact can be added from a hex address or from an ENS name. Hex addresses
must be all lower case, all upper case or correctly EIP-55 checksummed. ENS
names are resolved through the nodes of the selected network and stored as the
address they resolve to at the time of saving.

Adding an address that is already a contact, or that is one of your own
accounts (records in ~/.jarvis/<address>.json), is refused.

Contacts are stored in ~/.jarvis/contacts.db unless --db is given. Nodes can be
overridden per network with env vars, see "jarvis-contacts network list".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logger.Init(config.LogLevel); err != nil {
			return err
		}
		if config.DBPath == "" {
			config.DBPath = config.DefaultDBPath()
		}
		if config.AccountsDir == "" {
			config.AccountsDir = config.DefaultAccountsDir()
		}
		if _, err := networks.GetNetwork(config.Network); err != nil {
			return fmt.Errorf("%w. Valid values: %s", err, strings.Join(networks.GetSupportedNetworkNames(), ", "))
		}
		networks.SetNetwork(config.Network)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "mainnet", "network the contacts belong to, see \"network list\"")
	rootCmd.PersistentFlags().StringVar(&config.DBPath, "db", "", "contacts database file (default ~/.jarvis/contacts.db)")
	rootCmd.PersistentFlags().StringVar(&config.AccountsDir, "accounts", "", "directory of your own account records (default ~/.jarvis)")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
