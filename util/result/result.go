// Package result provides a generic panic-to-error boundary, adapted from the teacher's
// util/analysishelper.WrapRun: instead of wrapping a go/analysis sub-analyzer's run function, it
// wraps an arbitrary (T, error)-returning call so that a panic anywhere inside the analyzer
// surfaces as a diagnostic.Error (kind Internal) rather than crashing the caller (spec §7,
// "Internal wraps an unexpected panic... so that it still surfaces through the same typed error
// channel.").
package result

import (
	"fmt"
	"runtime/debug"

	"github.com/lucent-lang/erasure/diagnostic"
)

// Result pairs a value with an optional error, mirroring the teacher's analysishelper.Result[T].
type Result[T any] struct {
	Res T
	Err error
}

// Run calls f and recovers any panic it raises, converting it to a diagnostic.Internal error
// rather than propagating the panic to Run's caller.
func Run[T any](f func() (T, error)) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[T]{Err: diagnostic.InternalPanic(fmt.Sprintf("%v\n%s", r, debug.Stack()))}
		}
	}()

	res, err := f()
	result = Result[T]{Res: res, Err: err}
	return result
}
