// Package gruby embeds the CRuby (MRI) runtime in Go programs.
//
// The package is the low boundary between two hostile memory and control
// models. Ruby propagates errors by longjmp'ing back to the nearest
// protected frame, and its collector only discovers live values on its own
// native stack. gruby absorbs both: every fallible runtime call is issued
// through a protected trampoline and comes back as an ordinary
// (Value, error) pair, and values that must outlive a call are kept
// reachable through explicitly registered boxes.
//
// The runtime is process-global and single-threaded by design. Use an
// Executor to get the one thread the runtime may be touched from:
//
//	ex := gruby.NewExecutor()
//	defer ex.Stop()
//
//	err := ex.Submit(func() error {
//		v, err := gruby.EvalString(`"hello".upcase`)
//		if err != nil {
//			return err
//		}
//		fmt.Println(gruby.GoString(v))
//		return nil
//	})
//
// Calls into Ruby that take a block route through a single registered
// dispatcher; supply a Block to BlockCall and signal loop control with
// ErrIterBreak / IterBreakWith:
//
//	sum := int64(0)
//	_, err := gruby.BlockCall(ary, gruby.MustIntern("each"), nil,
//		func(args []gruby.Value, _ gruby.Value) (gruby.Value, error) {
//			n, err := gruby.Int64(args[0])
//			if err != nil {
//				return gruby.Nil, err
//			}
//			sum += n
//			return gruby.Nil, nil
//		})
//
// A failed call returns *Exception carrying the raised Ruby object, boxed
// so it stays alive for as long as the error is held. Nothing above the
// trampoline ever observes a non-local jump.
package gruby
