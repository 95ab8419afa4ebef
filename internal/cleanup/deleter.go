package cleanup

import "os"

// Deleter abstracts filesystem delete operations.
// Enables recording doubles in tests to prove guarded steps never delete
// outside the enumerated set.
type Deleter interface {
	Remove(path string) error
	RemoveAll(path string) error
}

// OSDeleter implements Deleter using real os package calls.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error {
	return os.Remove(path)
}

func (OSDeleter) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// FakeDeleter implements Deleter for testing.
// Records all delete calls without performing actual deletions.
type FakeDeleter struct {
	Calls []string
}

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	return nil
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, "rmall:"+path)
	return nil
}
