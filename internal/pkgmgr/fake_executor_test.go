package pkgmgr

import "strings"

// fakeExecutor records invocations and serves canned output keyed by the
// rendered command line.
type fakeExecutor struct {
	commands []string
	outputs  map[string]string
	failOn   map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		outputs: map[string]string{},
		failOn:  map[string]error{},
	}
}

func (f *fakeExecutor) Run(name string, args ...string) error {
	cmd := render(name, args...)
	f.commands = append(f.commands, cmd)
	return f.failOn[cmd]
}

func (f *fakeExecutor) Output(name string, args ...string) ([]byte, error) {
	cmd := render(name, args...)
	f.commands = append(f.commands, cmd)
	if err := f.failOn[cmd]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[cmd]), nil
}

func render(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
