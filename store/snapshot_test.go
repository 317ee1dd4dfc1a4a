package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucent-lang/erasure/ir"
	"github.com/lucent-lang/erasure/store"
)

func TestSnapshotRoundTrip(t *testing.T) {
	main := ir.UserName("Main", "main")
	helper := ir.UserName("", "helper")

	snap := store.NewSnapshot(
		[]ir.Name{main, helper},
		map[ir.Name][]int{helper: {0, 2}},
	)

	encoded, err := store.Encode(snap)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	decoded, err := store.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, snap, decoded)
}

func TestSnapshotRoundTripWithMachineNames(t *testing.T) {
	// Name's gob encoding must preserve the machine/tag fields too, not just the user-name path.
	lifted := ir.MachineName(7, "caseBlock")

	snap := store.NewSnapshot([]ir.Name{lifted}, nil)

	encoded, err := store.Encode(snap)
	require.NoError(t, err)

	decoded, err := store.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, []ir.Name{lifted}, decoded.Reachable)
}

func TestSnapshotDecodeRejectsGarbage(t *testing.T) {
	_, err := store.Decode([]byte("not a valid snapshot"))
	require.Error(t, err)
}
