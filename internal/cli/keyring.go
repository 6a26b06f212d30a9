package cli

import (
	"errors"
	"fmt"

	"github.com/oskarlind/dayqueue/internal/keyring"
)

// KeyringCmd manages the stored database connection string, grounded on
// the teacher's system.KeyringSetCmd/GetCmd/DeleteCmd/StatusCmd group.
// These commands never touch Machine, since they run before storage is
// resolved.
type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Print the connection string stored in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is available."`
}

type KeyringSetCmd struct {
	ConnString string `arg:"" help:"Connection string to store."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	return keyring.SetConnectionString(c.ConnString)
}

type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, connStr)
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	return keyring.DeleteConnectionString()
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *Context) error {
	if keyring.IsAvailable() {
		fmt.Fprintln(ctx.Out, "OS keyring is available.")
		return nil
	}
	return errors.New("OS keyring is not available")
}
