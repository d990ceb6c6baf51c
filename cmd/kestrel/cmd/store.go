package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestreldb/kestrel/pkg/store"
)

// openStore opens the record store described by the resolved config. The
// caller closes it.
func openStore(cmd *cobra.Command) (*store.RecordStore, error) {
	cfg, err := configFromContext(cmd)
	if err != nil {
		return nil, err
	}

	s, err := store.NewRecordStore(store.Config{
		DataDir: cfg.DataDir,
		Sync:    cfg.Storage.Sync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}
