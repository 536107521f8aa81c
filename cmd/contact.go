package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/tranvictor/jarvis-contacts/config"
	"github.com/tranvictor/jarvis-contacts/contact"
	"github.com/tranvictor/jarvis-contacts/logger"
	"github.com/tranvictor/jarvis-contacts/resolver"
	"github.com/tranvictor/jarvis-contacts/ui"
	"github.com/tranvictor/jarvis-contacts/util"
	"github.com/tranvictor/jarvis-contacts/util/addrbook"
)

var (
	contactNewAddress string
	contactMode       string
	contactJSON       bool
)

// stateFeed buffers the states a form publishes so the command renders them
// from its own goroutine, after any spinner has stopped.
type stateFeed chan resolver.State

func newStateFeed() stateFeed {
	return make(stateFeed, 16)
}

func (f stateFeed) publish(st resolver.State) {
	select {
	case f <- st:
	default:
		logger.L().Warnw("dropping resolution state, feed is full", "seq", st.Seq)
	}
}

// drain discards what was published without showing it.
func (f stateFeed) drain() {
	for {
		select {
		case <-f:
		default:
			return
		}
	}
}

func (f stateFeed) render(u ui.UI) {
	for {
		select {
		case st := <-f:
			renderState(u, st)
		default:
			return
		}
	}
}

func nonBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this can't be empty")
	}
	return nil
}

// enterAddress feeds raw to the form, waiting under a spinner when it has
// to be looked up, then renders what was published.
func enterAddress(ctx context.Context, u ui.UI, form *contact.Form, feed stateFeed, raw string) {
	if resolver.Classify(raw) == resolver.KindName {
		stop := u.Spinner(fmt.Sprintf("Resolving %s", raw))
		form.SetAddress(ctx, raw)
		form.Wait()
		stop()
	} else {
		form.SetAddress(ctx, raw)
	}
	feed.render(u)
}

func notSubmittable(form *contact.Form) error {
	st := form.State()
	if st.Err != resolver.ErrNone {
		return fmt.Errorf("can't save %q: %s", st.Input, st.Err.Message())
	}
	if strings.TrimSpace(form.Name()) == "" {
		return contact.ErrEmptyName
	}
	return fmt.Errorf("%q is neither an address nor an ENS name", st.Input)
}

// runAddContact is the add contact form. Missing name or address are asked
// for; the address is asked again until it can be saved.
func runAddContact(ctx context.Context, u ui.UI, deps *contactDeps, name, address string) (addrbook.ContactEntry, error) {
	u.Section(fmt.Sprintf("Add contact on %s", deps.network.GetName()))
	feed := newStateFeed()
	form := contact.NewAddForm(deps.resolver, deps.dir, deps.networkID, feed.publish)
	defer form.Close()

	if strings.TrimSpace(name) == "" {
		u.Info("Name")
		answer, err := u.Ask(nonBlank)
		if err != nil {
			return addrbook.ContactEntry{}, fmt.Errorf("input closed before a name was entered: %w", err)
		}
		name = answer
	}
	form.SetName(name)

	if address != "" {
		enterAddress(ctx, u, form, feed, address)
		if !form.Submittable() {
			return addrbook.ContactEntry{}, notSubmittable(form)
		}
	} else {
		u.Info("Address (0x...) or ENS name")
		for !form.Submittable() {
			raw, err := u.Ask(nonBlank)
			if err != nil {
				return addrbook.ContactEntry{}, fmt.Errorf("input closed before a valid address was entered: %w", err)
			}
			enterAddress(ctx, u, form, feed, strings.TrimSpace(raw))
		}
	}

	entry, err := form.Submit()
	if err != nil {
		return addrbook.ContactEntry{}, err
	}
	u.Success("Saved %s as %q", entry.Address.Hex(), entry.Name)
	return entry, nil
}

// runEditContact edits the contact stored for address. With neither
// newName nor newAddress it asks for both, an empty answer keeping the
// current value. When the address changes the old entry is removed; if the
// new address already belongs to another contact, replacing it needs a
// confirmation unless force is set.
func runEditContact(
	ctx context.Context,
	u ui.UI,
	deps *contactDeps,
	address, newName, newAddress string,
	force bool,
) (addrbook.ContactEntry, error) {
	feed := newStateFeed()
	form, err := contact.NewEditForm(ctx, deps.resolver, deps.dir, deps.owned, deps.networkID, address, feed.publish)
	if err != nil {
		return addrbook.ContactEntry{}, err
	}
	defer form.Close()
	feed.drain()
	original := form.State().Addr()

	u.Section(fmt.Sprintf("Edit contact on %s", deps.network.GetName()))
	u.KeyValue([][2]string{
		{"Name", form.Name()},
		{"Address", original.Hex()},
	})

	interactive := newName == "" && newAddress == ""
	if interactive {
		u.Info("New name (empty to keep %q)", form.Name())
		answer, err := u.Ask(nil)
		if err != nil {
			return addrbook.ContactEntry{}, fmt.Errorf("input closed before the new name was entered: %w", err)
		}
		newName = strings.TrimSpace(answer)
	}
	if newName != "" {
		form.SetName(newName)
	}

	if interactive {
		u.Info("New address or ENS name (empty to keep %s)", original.Hex())
		for {
			answer, err := u.Ask(nil)
			if err != nil {
				return addrbook.ContactEntry{}, fmt.Errorf("input closed before a valid address was entered: %w", err)
			}
			raw := strings.TrimSpace(answer)
			if raw == "" {
				form.SetAddress(ctx, original.Hex())
				feed.drain()
				break
			}
			enterAddress(ctx, u, form, feed, raw)
			if form.Submittable() {
				break
			}
		}
	} else if newAddress != "" {
		enterAddress(ctx, u, form, feed, newAddress)
	}
	if !form.Submittable() {
		return addrbook.ContactEntry{}, notSubmittable(form)
	}

	if target := form.State().Addr(); target != original {
		other, taken, err := deps.dir.Lookup(deps.networkID, target)
		if err != nil {
			return addrbook.ContactEntry{}, err
		}
		if taken {
			question := fmt.Sprintf("%s is already saved as %q. Replace it?", target.Hex(), other.Name)
			if force {
				u.Warn("Replacing %q (%s)", other.Name, target.Hex())
			} else if !u.Confirm(question, false) {
				u.Info("Nothing changed")
				return addrbook.ContactEntry{}, nil
			}
		}
	}

	entry, err := form.Submit()
	if err != nil {
		return addrbook.ContactEntry{}, err
	}
	if entry.Address != original {
		if err := deps.dir.Remove(deps.networkID, original); err != nil {
			return entry, fmt.Errorf("saved %s but couldn't remove %s: %w", entry.Address.Hex(), original.Hex(), err)
		}
	}
	u.Success("Updated %s: %q", entry.Address.Hex(), entry.Name)
	return entry, nil
}

func runResolve(ctx context.Context, u ui.UI, deps *contactDeps, input string, mode resolver.Mode) resolver.State {
	var st resolver.State
	if resolver.Classify(input) == resolver.KindName {
		stop := u.Spinner(fmt.Sprintf("Resolving %s", input))
		st = deps.resolver.Resolve(ctx, input, deps.networkID, mode)
		stop()
	} else {
		st = deps.resolver.Resolve(ctx, input, deps.networkID, mode)
	}
	u.KeyValue(stateRows(u, st))
	return st
}

func runList(u ui.UI, deps *contactDeps, asJSON bool) error {
	entries, err := deps.dir.List(deps.networkID)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(u.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		u.Info("No contacts on %s yet. Add one with: jarvis-contacts contact add", deps.network.GetName())
		return nil
	}
	rows := [][]string{}
	for i, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), e.Name, e.Address.Hex()})
	}
	u.Table([]string{"#", "Name", "Address"}, rows)
	return nil
}

func runFind(u ui.UI, deps *contactDeps, query string) error {
	entries, scores, err := addrbook.Search(deps.dir, deps.networkID, query)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		u.Warn("No contact matches %q", query)
		return nil
	}
	rows := [][]string{}
	for i, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("%d", scores[i]), e.Name, e.Address.Hex()})
	}
	u.Table([]string{"Score", "Name", "Address"}, rows)
	return nil
}

func runRemove(u ui.UI, deps *contactDeps, address string, force bool) error {
	if !util.IsValidAddress(address) {
		return fmt.Errorf("%q is not a valid address", address)
	}
	addr := common.HexToAddress(address)
	entry, found, err := deps.dir.Lookup(deps.networkID, addr)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", addr.Hex(), contact.ErrContactNotFound)
	}
	if !force && !u.Confirm(fmt.Sprintf("Remove %q (%s)?", entry.Name, addr.Hex()), false) {
		u.Info("Nothing removed")
		return nil
	}
	if err := deps.dir.Remove(deps.networkID, addr); err != nil {
		return err
	}
	u.Success("Removed %q", entry.Name)
	return nil
}

// withContactDeps runs fn with the production stores, closing them after.
func withContactDeps(fn func(deps *contactDeps) error) error {
	deps, err := openContactDeps()
	if err != nil {
		return err
	}
	defer deps.close()
	return fn(deps)
}

var addContactCmd = &cobra.Command{
	Use:   "add [address or ENS name]",
	Short: "Add a contact from an address or an ENS name",
	Long: `Add a contact. Without arguments both the name and the address are asked for.
The address may be a hex address or an ENS name such as vitalik.eth, which is
resolved on the selected network and saved as the address it points to.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := ""
		if len(args) == 1 {
			address = strings.TrimSpace(args[0])
		}
		return withContactDeps(func(deps *contactDeps) error {
			_, err := runAddContact(cmd.Context(), ui.NewTerminalUI(), deps, config.ContactName, address)
			return err
		})
	},
}

var editContactCmd = &cobra.Command{
	Use:   "edit <address>",
	Short: "Rename a contact or change its address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContactDeps(func(deps *contactDeps) error {
			_, err := runEditContact(cmd.Context(), ui.NewTerminalUI(), deps, strings.TrimSpace(args[0]), config.ContactName, contactNewAddress, config.Force)
			return err
		})
	},
}

var resolveContactCmd = &cobra.Command{
	Use:   "resolve <address or ENS name>",
	Short: "Show how an input would be understood when adding or editing a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := resolver.ParseMode(contactMode)
		if err != nil {
			return err
		}
		return withContactDeps(func(deps *contactDeps) error {
			runResolve(cmd.Context(), ui.NewTerminalUI(), deps, args[0], mode)
			return nil
		})
	},
}

var listContactCmd = &cobra.Command{
	Use:   "list",
	Short: "List the contacts of the selected network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContactDeps(func(deps *contactDeps) error {
			return runList(ui.NewTerminalUI(), deps, contactJSON)
		})
	},
}

var findContactCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find at max 10 contacts matching a name or address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContactDeps(func(deps *contactDeps) error {
			return runFind(ui.NewTerminalUI(), deps, strings.Join(args, " "))
		})
	},
}

var removeContactCmd = &cobra.Command{
	Use:     "rm <address>",
	Aliases: []string{"remove"},
	Short:   "Remove a contact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContactDeps(func(deps *contactDeps) error {
			return runRemove(ui.NewTerminalUI(), deps, strings.TrimSpace(args[0]), config.Force)
		})
	},
}

var contactCmd = &cobra.Command{
	Use:     "contact",
	Aliases: []string{"contacts", "c"},
	Short:   "Manage the contacts of the selected network",
}

func init() {
	addContactCmd.Flags().StringVarP(&config.ContactName, "name", "n", "", "contact name")
	editContactCmd.Flags().StringVarP(&config.ContactName, "name", "n", "", "new contact name")
	editContactCmd.Flags().StringVarP(&contactNewAddress, "address", "a", "", "new address or ENS name")
	editContactCmd.Flags().BoolVarP(&config.Force, "yes", "y", false, "replace a contact already saved at the new address without asking")
	resolveContactCmd.Flags().StringVarP(&contactMode, "mode", "m", "add", "add or edit; duplicates are only reported when adding")
	listContactCmd.Flags().BoolVar(&contactJSON, "json", false, "print contacts as json")
	removeContactCmd.Flags().BoolVarP(&config.Force, "yes", "y", false, "don't ask for confirmation")

	contactCmd.AddCommand(addContactCmd)
	contactCmd.AddCommand(editContactCmd)
	contactCmd.AddCommand(resolveContactCmd)
	contactCmd.AddCommand(listContactCmd)
	contactCmd.AddCommand(findContactCmd)
	contactCmd.AddCommand(removeContactCmd)
	rootCmd.AddCommand(contactCmd)
}
