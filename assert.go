package main

// assert panics on errors that can only come from a broken X server or
// a bug in the window manager.
func assert(err error) {
	if err != nil {
		panic(err)
	}
}

func must[T any](v T, err error) T {
	assert(err)
	return v
}
