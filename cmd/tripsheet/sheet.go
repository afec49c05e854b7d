package main

import (
	"fmt"
	"os"

	"github.com/mmynk/tripsheet/internal/ledger"
	"github.com/mmynk/tripsheet/internal/snapshot"
)

// readSheet loads an exported sheet file into a ledger.
func readSheet(file string) (*ledger.State, error) {
	if file == "" {
		return nil, fmt.Errorf("no sheet file given")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	snap, err := snapshot.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return snapshot.Deserialize(snap), nil
}
