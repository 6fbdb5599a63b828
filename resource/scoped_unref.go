package resource

// WithUnref clears the contents of a reusable frame/packet object on scope
// exit without destroying the object itself. Used inside the hot loop where
// the same object is populated by libav every iteration.
func WithUnref[T interface{ Unref() }](obj T, fn func() error) error {
	defer obj.Unref()
	return fn()
}
