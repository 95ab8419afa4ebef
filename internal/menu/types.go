package menu

// Option represents a selectable menu entry.
type Option struct {
	Label       string
	Description string
	Handler     func() error
	Enabled     bool
}
