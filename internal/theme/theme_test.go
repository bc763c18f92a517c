package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const myThemeIndex = `[Icon Theme]
Name=My Theme
Comment=Test theme
Inherits=Parent
Directories=16x16/apps,48x48/apps,scalable/apps,symbolic/apps,missing/dir

[16x16/apps]
Size=16
Context=Applications
Type=Fixed

[48x48/apps]
Size=48
Context=Applications
Type=Fixed

[scalable/apps]
Size=64
MinSize=8
MaxSize=512
Context=Applications
Type=Scalable

[symbolic/apps]
Size=16
MinSize=8
MaxSize=512
Context=Applications
Type=Scalable
`

const parentIndex = `[Icon Theme]
Name=Parent
Inherits=hicolor
Directories=32x32/places

[32x32/places]
Size=32
Context=Places
`

const hicolorIndex = `[Icon Theme]
Name=Hicolor
Directories=48x48/apps

[48x48/apps]
Size=48
Type=Threshold
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// setupThemes creates a search path layout with an inheriting theme, its
// parent, hicolor and a pixmaps fallback directory
func setupThemes(t *testing.T) []string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base := t.TempDir()
	pixmaps := t.TempDir()

	writeFile(t, filepath.Join(base, "MyTheme", "index.theme"), myThemeIndex)
	writeFile(t, filepath.Join(base, "MyTheme", "16x16", "apps", "editor.png"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "48x48", "apps", "editor.png"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "48x48", "apps", "editor.svg"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "scalable", "apps", "editor.svg"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "scalable", "apps", "terminal.svg"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "scalable", "apps", "notes.txt"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "symbolic", "apps", "editor-symbolic.svg"), "")
	writeFile(t, filepath.Join(base, "MyTheme", "symbolic", "apps", "mail-symbolic.symbolic.png"), "")

	writeFile(t, filepath.Join(base, "Parent", "index.theme"), parentIndex)
	writeFile(t, filepath.Join(base, "Parent", "32x32", "places", "folder.png"), "")
	writeFile(t, filepath.Join(base, "Parent", "32x32", "places", "editor.png"), "")

	writeFile(t, filepath.Join(base, "hicolor", "index.theme"), hicolorIndex)
	writeFile(t, filepath.Join(base, "hicolor", "48x48", "apps", "firefox.png"), "")

	writeFile(t, filepath.Join(pixmaps, "legacy-app.xpm"), "")

	return []string{base, pixmaps}
}

func TestParseIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.theme")
	writeFile(t, path, myThemeIndex)

	idx, err := ParseIndex("MyTheme", path)
	if err != nil {
		t.Fatalf("ParseIndex() error: %v", err)
	}

	if idx.Name != "My Theme" {
		t.Errorf("Expected name 'My Theme', got %q", idx.Name)
	}
	if !slices.Equal(idx.Inherits, []string{"Parent"}) {
		t.Errorf("Unexpected inherits: %v", idx.Inherits)
	}
	// missing/dir has no section
	if len(idx.Directories) != 4 {
		t.Fatalf("Expected 4 directories, got %d", len(idx.Directories))
	}

	scalable := idx.Directories[2]
	if scalable.Type != TypeScalable || scalable.MinSize != 8 || scalable.MaxSize != 512 {
		t.Errorf("Unexpected scalable directory: %+v", scalable)
	}
	if scalable.Scale != 1 || scalable.Threshold != 2 {
		t.Errorf("Expected defaults for scale and threshold, got %+v", scalable)
	}
}

func TestParseIndex_MissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.theme")
	writeFile(t, path, "[Something Else]\nName=x\n")

	if _, err := ParseIndex("x", path); err == nil {
		t.Error("Expected an error for a missing [Icon Theme] section")
	}
}

func TestDirectory_SizeMatching(t *testing.T) {
	tests := []struct {
		name      string
		dir       Directory
		size      int
		wantMatch bool
		wantDist  int
	}{
		{"fixed exact", Directory{Type: TypeFixed, Size: 48}, 48, true, 0},
		{"fixed smaller", Directory{Type: TypeFixed, Size: 48}, 32, false, 16},
		{"scalable inside", Directory{Type: TypeScalable, MinSize: 8, MaxSize: 512}, 256, true, 0},
		{"scalable below", Directory{Type: TypeScalable, MinSize: 16, MaxSize: 512}, 8, false, 8},
		{"scalable above", Directory{Type: TypeScalable, MinSize: 16, MaxSize: 64}, 96, false, 32},
		{"threshold inside", Directory{Type: TypeThreshold, Size: 48, Threshold: 2}, 50, true, 0},
		{"threshold below", Directory{Type: TypeThreshold, Size: 48, Threshold: 2}, 40, false, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dir.MatchesSize(tt.size); got != tt.wantMatch {
				t.Errorf("MatchesSize(%d) = %v, want %v", tt.size, got, tt.wantMatch)
			}
			if got := tt.dir.SizeDistance(tt.size); got != tt.wantDist {
				t.Errorf("SizeDistance(%d) = %d, want %d", tt.size, got, tt.wantDist)
			}
		})
	}
}

func TestOpen_Chain(t *testing.T) {
	paths := setupThemes(t)

	th, err := Open(Options{Name: "MyTheme", SearchPaths: paths})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	want := []string{"MyTheme", "Parent", "hicolor"}
	if !slices.Equal(th.Chain(), want) {
		t.Errorf("Chain() = %v, want %v", th.Chain(), want)
	}
	if th.Name() != "MyTheme" {
		t.Errorf("Name() = %s", th.Name())
	}
}

func TestOpen_UnknownTheme(t *testing.T) {
	paths := setupThemes(t)

	if _, err := Open(Options{Name: "Nope", SearchPaths: paths}); err == nil {
		t.Error("Expected an error for a missing theme")
	}
}

func TestTheme_IconNames(t *testing.T) {
	paths := setupThemes(t)
	th, err := Open(Options{Name: "MyTheme", SearchPaths: paths})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"editor", "editor-symbolic", "firefox", "folder", "legacy-app", "mail-symbolic", "terminal"}
	if !slices.Equal(th.IconNames(), want) {
		t.Errorf("IconNames() = %v, want %v", th.IconNames(), want)
	}
}

func TestTheme_Lookup(t *testing.T) {
	paths := setupThemes(t)
	base, pixmaps := paths[0], paths[1]
	th, err := Open(Options{Name: "MyTheme", SearchPaths: paths})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		icon         string
		size         int
		wantPath     string
		wantSymbolic bool
	}{
		{"exact fixed prefers png", "editor", 48, filepath.Join(base, "MyTheme", "48x48", "apps", "editor.png"), false},
		{"exact small size", "editor", 16, filepath.Join(base, "MyTheme", "16x16", "apps", "editor.png"), false},
		{"scalable for large size", "editor", 256, filepath.Join(base, "MyTheme", "scalable", "apps", "editor.svg"), false},
		{"child theme wins over parent", "editor", 32, filepath.Join(base, "MyTheme", "scalable", "apps", "editor.svg"), false},
		{"inherited from parent", "folder", 48, filepath.Join(base, "Parent", "32x32", "places", "folder.png"), false},
		{"inherited from hicolor", "firefox", 48, filepath.Join(base, "hicolor", "48x48", "apps", "firefox.png"), false},
		{"pixmaps fallback", "legacy-app", 48, filepath.Join(pixmaps, "legacy-app.xpm"), false},
		{"symbolic by name", "editor-symbolic", 16, filepath.Join(base, "MyTheme", "symbolic", "apps", "editor-symbolic.svg"), true},
		{"symbolic png", "mail-symbolic", 16, filepath.Join(base, "MyTheme", "symbolic", "apps", "mail-symbolic.symbolic.png"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := th.Lookup(tt.icon, tt.size)
			if !res.Found {
				t.Fatalf("Expected %s to be found", tt.icon)
			}
			if res.Path != tt.wantPath {
				t.Errorf("Lookup(%s, %d) path = %s, want %s", tt.icon, tt.size, res.Path, tt.wantPath)
			}
			if res.Symbolic != tt.wantSymbolic {
				t.Errorf("Lookup(%s, %d) symbolic = %v, want %v", tt.icon, tt.size, res.Symbolic, tt.wantSymbolic)
			}
		})
	}

	if res := th.Lookup("does-not-exist", 48); res.Found || res.Path != "" {
		t.Errorf("Expected unresolvable lookup, got %+v", res)
	}
}

func TestIsSymbolic(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"folder-symbolic", "/x/folder-symbolic.svg", true},
		{"folder", "/x/folder.symbolic.png", true},
		{"folder", "/x/folder.svg", false},
		{"symbolic-folder", "/x/symbolic-folder.svg", false},
	}

	for _, tt := range tests {
		if got := IsSymbolic(tt.name, tt.path); got != tt.want {
			t.Errorf("IsSymbolic(%q, %q) = %v, want %v", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestDetectName(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	base := t.TempDir()

	saved := systemGTKSettings
	systemGTKSettings = nil
	t.Cleanup(func() { systemGTKSettings = saved })

	if got := DetectName([]string{base}); got != FallbackTheme {
		t.Errorf("Expected %s with nothing installed, got %s", FallbackTheme, got)
	}

	writeFile(t, filepath.Join(base, "Adwaita", "index.theme"), "[Icon Theme]\nName=Adwaita\n")
	if got := DetectName([]string{base}); got != "Adwaita" {
		t.Errorf("Expected Adwaita when installed, got %s", got)
	}

	writeFile(t, filepath.Join(configHome, "gtk-3.0", "settings.ini"), "[Settings]\ngtk-icon-theme-name = Papirus-Dark\n")
	if got := DetectName([]string{base}); got != "Papirus-Dark" {
		t.Errorf("Expected GTK setting to win, got %s", got)
	}
}

func TestDefaultSearchPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data/home")
	t.Setenv("XDG_DATA_DIRS", "/a:/b")

	paths := DefaultSearchPaths()
	want := []string{"/data/home/icons", "/a/icons", "/b/icons", "/usr/share/pixmaps"}
	if !slices.Equal(paths[1:], want) {
		t.Errorf("DefaultSearchPaths() = %v, want ~/.icons followed by %v", paths, want)
	}
}
