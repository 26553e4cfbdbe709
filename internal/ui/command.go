package ui

// Command is a request the prompt hands back to the editor.
type Command interface {
	command()
}

// OpenFile asks the editor to open Path in a new pane.
type OpenFile struct {
	Path string
}

func (OpenFile) command() {}
