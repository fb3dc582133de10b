// Package async isolates units of work so that a panic in one of them is
// reported as an error instead of terminating the process.
//
// # Overview
//
// The loader parses files on a bounded pool of goroutines and the lint
// engine runs every rule on every file. A bug triggered by one odd input
// must not lose the results of the others, so both wrap their work in Run.
//
// # Usage Example
//
//	err := async.Run(path, func() error {
//		return parse(path)
//	})
//	var perr *async.PanicError
//	if errors.As(err, &perr) {
//		log.Errorf("%v\n%s", perr, perr.Stack)
//	}
package async
