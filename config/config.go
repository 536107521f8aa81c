package config

import (
	"log"
	"os/user"
	"path/filepath"
)

var (
	Network  string
	LogLevel string

	// DBPath is the bbolt file contacts are stored in.
	DBPath string
	// AccountsDir holds one <address>.json record per wallet account.
	AccountsDir string

	ContactName string
	Force       bool
)

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return usr.HomeDir
}

// Home is ~/.jarvis, the directory every default path lives under.
func Home() string {
	return filepath.Join(getHomeDir(), ".jarvis")
}

func DefaultDBPath() string {
	return filepath.Join(Home(), "contacts.db")
}

func DefaultAccountsDir() string {
	return Home()
}
