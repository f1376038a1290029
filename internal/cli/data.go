package cli

import (
	"context"
	"fmt"
)

// Export writes the whole dataset to a JSON file.
func (a *App) Export(ctx context.Context, path string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.backup.ExportToFile(ctx, path); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Exported to", path)
	return nil
}

// Import replaces the stored collections with the contents of a JSON file.
func (a *App) Import(ctx context.Context, path string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.backup.ImportFromFile(ctx, path); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.activeConv = ""
	a.activePeer = nil
	fmt.Fprintln(a.out, "Imported from", path)
	return nil
}

// Reset wipes every collection, reseeds the demo users and drops the
// session, returning the app to its first-run state.
func (a *App) Reset(ctx context.Context) error {
	if err := a.backup.Reset(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.sim.Shutdown()
	a.currentUser = nil
	a.activeConv = ""
	a.activePeer = nil
	fmt.Fprintln(a.out, "Reset done; demo users alice, bob and charlie are available")
	return nil
}
