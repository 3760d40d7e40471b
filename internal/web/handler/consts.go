package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the path of a group's own root.
	RouterRootPath = ""

	// ErrNilACFatalLogMsg is used if app or cfg var pointer is nil.
	ErrNilACFatalLogMsg = "app or cfg is nil"
)
