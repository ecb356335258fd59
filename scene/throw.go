package scene

import "github.com/pkg/errors"

// Threading errors through every argument lookup and kind check during query
// evaluation would bury the geometry in plumbing. Instead, we use panics, and
// the public API recovers to convert to an error.

// SceneError marks a panic as one of ours. Any other panic, including runtime
// errors, is re-raised by HandleScenePanicRecover.
type SceneError struct {
	error
}

func (e SceneError) Cause() error { return e.error }

// Panic with a SceneError.
func fatalf(format string, args ...interface{}) {
	panic(SceneError{errors.Errorf(format, args...)})
}

func HandleScenePanicRecover(r interface{}) error {
	if r != nil {
		if sceneError, ok := r.(SceneError); ok {
			return sceneError
		}
		panic(r)
	}
	return nil
}
