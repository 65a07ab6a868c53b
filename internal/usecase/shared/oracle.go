package shared

import (
	"context"
	"time"
)

// oracleReply carries the result of one oracle call across goroutines.
type oracleReply struct {
	err  error
	text string
}

// callOracle runs call with a deadline of timeout (none when timeout <= 0).
// It returns when the deadline passes even if call ignores its context;
// the abandoned call's result is discarded.
func callOracle(ctx context.Context, timeout time.Duration, call func(context.Context) (string, error)) (string, error) {
	cctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ch := make(chan oracleReply, 1)
	go func() {
		text, err := call(cctx)
		ch <- oracleReply{text: text, err: err}
	}()

	select {
	case r := <-ch:
		return r.text, r.err
	case <-cctx.Done():
		return "", cctx.Err()
	}
}
