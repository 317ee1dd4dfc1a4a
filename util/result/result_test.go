package result_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/util/result"
)

func TestRunPassesThroughSuccess(t *testing.T) {
	r := result.Run(func() (int, error) { return 42, nil })
	require.NoError(t, r.Err)
	require.Equal(t, 42, r.Res)
}

func TestRunPassesThroughError(t *testing.T) {
	sentinel := errors.New("boom")
	r := result.Run(func() (int, error) { return 0, sentinel })
	require.ErrorIs(t, r.Err, sentinel)
}

func TestRunRecoversPanic(t *testing.T) {
	r := result.Run(func() (int, error) {
		panic("unexpected")
	})
	require.Error(t, r.Err)

	var derr *diagnostic.Error
	require.ErrorAs(t, r.Err, &derr)
	require.Equal(t, diagnostic.Internal, derr.Kind())
}
