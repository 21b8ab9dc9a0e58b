package exec

// Execute opens root, pulls until exhausted, and always closes — even if
// Init or Next return an error or the pull panics (spec.md §5: "the
// top-level driver must close every executor it opened, regardless of how
// the run ends"). It returns the first error encountered from Init, a
// terminal Next/Error, or Close.
func Execute(root Executor, ctx *ExecutorContext) (err error) {
	defer func() {
		closeErr := root.Close()
		if err == nil {
			err = closeErr
		}
		if r := recover(); r != nil {
			panic(r)
		}
	}()
	if initErr := root.Init(ctx); initErr != nil {
		return initErr
	}

	for root.Next() {
	}
	return root.Error()
}
