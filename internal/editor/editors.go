package editor

// NewInkscape creates an Inkscape instance
func NewInkscape() Editor {
	return &baseEditor{name: "Inkscape", command: "inkscape"}
}

// NewGIMP creates a GIMP instance
func NewGIMP() Editor {
	return &baseEditor{name: "GIMP", command: "gimp"}
}

// NewVSCode creates a VS Code instance reusing an open window
// Command: code --reuse-window FILE
func NewVSCode() Editor {
	return &baseEditor{name: "VS Code", command: "code", args: []string{"--reuse-window"}}
}

// NewCursor creates a Cursor instance. Cursor takes the same flags as VS Code.
func NewCursor() Editor {
	return &baseEditor{name: "Cursor", command: "cursor", args: []string{"--reuse-window"}}
}

// NewZed creates a Zed instance
func NewZed() Editor {
	return &baseEditor{name: "Zed", command: "zed"}
}

// NewSystemDefault opens files with the desktop's default application
func NewSystemDefault() Editor {
	return &baseEditor{name: "Default application", command: "xdg-open"}
}
