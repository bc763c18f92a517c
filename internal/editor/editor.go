// Package editor opens icon files in an external application.
package editor

import (
	"fmt"
	"os/exec"
)

// Editor is an application an icon file can be opened in
type Editor interface {
	// Name returns the display name of the editor
	Name() string

	// IsInstalled checks if the editor is available on the system
	IsInstalled() bool

	// Open starts the editor on path without waiting for it
	Open(path string) error

	// Wait blocks until the editor is closed
	Wait() error
}

// Auto selects the first installed editor in Priority order
const Auto = "auto"

// Priority is the auto-detection order
var Priority = []string{"inkscape", "code", "cursor", "zed", "xdg-open"}

// editorsByName maps editor names to constructor functions
var editorsByName = map[string]func() Editor{
	"inkscape": NewInkscape,
	"gimp":     NewGIMP,
	"code":     NewVSCode,
	"cursor":   NewCursor,
	"zed":      NewZed,
	"xdg-open": NewSystemDefault,
}

// Names returns every supported editor name
func Names() []string {
	return append(Priority[:len(Priority):len(Priority)], "gimp")
}

// Detect returns the named editor, or the first installed one when name is
// empty or Auto
func Detect(name string) (Editor, error) {
	if name != "" && name != Auto {
		constructor, ok := editorsByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown editor: %s", name)
		}
		editor := constructor()
		if !editor.IsInstalled() {
			return nil, fmt.Errorf("editor %s is not installed", name)
		}
		return editor, nil
	}

	for _, n := range Priority {
		editor := editorsByName[n]()
		if editor.IsInstalled() {
			return editor, nil
		}
	}

	return nil, fmt.Errorf("no supported editor found (install Inkscape or VS Code, or set editor in config)")
}

// ListInstalled returns all installed editors in Priority order
func ListInstalled() []Editor {
	var installed []Editor
	for _, n := range Names() {
		editor := editorsByName[n]()
		if editor.IsInstalled() {
			installed = append(installed, editor)
		}
	}
	return installed
}

// isCommandAvailable checks if a command exists in PATH
func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// baseEditor runs command with args followed by the file path
type baseEditor struct {
	name    string
	command string
	args    []string
	cmd     *exec.Cmd
}

func (e *baseEditor) Name() string {
	return e.name
}

func (e *baseEditor) IsInstalled() bool {
	return isCommandAvailable(e.command)
}

func (e *baseEditor) Open(path string) error {
	args := append(e.args[:len(e.args):len(e.args)], path)
	e.cmd = exec.Command(e.command, args...)
	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", e.name, err)
	}
	return nil
}

func (e *baseEditor) Wait() error {
	if e.cmd == nil {
		return nil
	}
	return e.cmd.Wait()
}
