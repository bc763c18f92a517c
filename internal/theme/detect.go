package theme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// DefaultSearchPaths returns the icon base directories in lookup order:
// ~/.icons, $XDG_DATA_HOME/icons, $XDG_DATA_DIRS/icons and /usr/share/pixmaps
func DefaultSearchPaths() []string {
	homeDir, _ := os.UserHomeDir()

	paths := []string{filepath.Join(homeDir, ".icons")}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	paths = append(paths, filepath.Join(dataHome, "icons"))

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, "icons"))
		}
	}

	return append(paths, "/usr/share/pixmaps")
}

// systemGTKSettings are consulted after the user's GTK settings
var systemGTKSettings = []string{"/etc/gtk-4.0/settings.ini", "/etc/gtk-3.0/settings.ini"}

// gtkSettingsFiles lists the GTK settings files that may name the icon theme
func gtkSettingsFiles() []string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, _ := os.UserHomeDir()
		configHome = filepath.Join(homeDir, ".config")
	}
	files := []string{
		filepath.Join(configHome, "gtk-4.0", "settings.ini"),
		filepath.Join(configHome, "gtk-3.0", "settings.ini"),
	}
	return append(files, systemGTKSettings...)
}

// DetectName returns the icon theme configured for GTK, or the first of
// Adwaita and hicolor installed in searchPaths
func DetectName(searchPaths []string) string {
	for _, path := range gtkSettingsFiles() {
		if name := readGTKIconTheme(path); name != "" {
			return name
		}
	}

	for _, candidate := range []string{"Adwaita", FallbackTheme} {
		for _, base := range searchPaths {
			if _, err := os.Stat(filepath.Join(base, candidate, "index.theme")); err == nil {
				return candidate
			}
		}
	}
	return FallbackTheme
}

// readGTKIconTheme reads gtk-icon-theme-name from a GTK settings.ini file
func readGTKIconTheme(path string) string {
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true, IgnoreInlineComment: true}, path)
	if err != nil {
		return ""
	}
	sec, err := cfg.GetSection("Settings")
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(sec.Key("gtk-icon-theme-name").String()), `"`)
}
