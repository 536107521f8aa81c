package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/jarvis-contacts/networks"
	"github.com/tranvictor/jarvis-contacts/ui"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

// readNetworkConfig accepts either inline json or a path to a json file.
func readNetworkConfig(raw string) (networks.Network, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("pass the network config with --config, as json or as a path to a json file")
	}
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		n, err := networks.NewNetworkFromJSON([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("the provided json is not valid: %w", err)
		}
		return n, nil
	}
	content, err := os.ReadFile(raw)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the provided json file: %w", err)
	}
	n, err := networks.NewNetworkFromJSON(content)
	if err != nil {
		return nil, fmt.Errorf("the provided json is not a valid network config: %w", err)
	}
	return n, nil
}

func runAddNetwork(u ui.UI, raw string, force bool) error {
	newNetwork, err := readNetworkConfig(raw)
	if err != nil {
		return err
	}

	allNames := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
	for _, name := range allNames {
		if _, err := networks.GetNetwork(name); err == nil {
			if !force {
				return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
			}
			u.Warn("Network %s already exists. It will be replaced.", name)
		}
	}

	if err := networks.AddNetwork(newNetwork); err != nil {
		return fmt.Errorf("failed to add the new network: %w", err)
	}
	u.Success("Network %s with chain ID %d added and saved to %s", newNetwork.GetName(), newNetwork.GetChainID(), networks.CustomNetworksDir)
	return nil
}

func runListNetworks(u ui.UI) {
	rows := [][]string{}
	for _, n := range networks.GetSupportedNetworks() {
		ens := "-"
		if n.GetENSRegistry() != "" {
			ens = "yes"
		}
		nodes := n.GetDefaultNodes()
		names := make([]string, 0, len(nodes))
		for name := range nodes {
			names = append(names, name)
		}
		sort.Strings(names)
		rows = append(rows, []string{
			n.GetName(),
			fmt.Sprintf("%d", n.GetChainID()),
			ens,
			strings.Join(names, ", "),
		})
	}
	u.Table([]string{"Name", "Chain ID", "ENS", "Nodes"}, rows)
	u.Info("Contacts are kept per network. Add a network with: jarvis-contacts network add --config <json>")
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--config takes a network config json filepath OR a json string in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"node_variable_name": "JARVIS_NODE_1",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"ens_registry": "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"
	}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddNetwork(ui.NewTerminalUI(), NetworkConfig, NetworkForce)
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runListNetworks(ui.NewTerminalUI())
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks contacts can be kept for",
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "config", "c", "", "Path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "Replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
