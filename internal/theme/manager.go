package theme

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/biztro/biztro/internal/viewhelpers"
)

// Manager discovers and loads themes from BaseDir (e.g., "themes").  Parsed
// themes are not cached here; the profile cache holds the renderer for each
// live page, so Manager.Load only runs on cold loads.
type Manager struct {
	BaseDir string
}

// Load parses every template under /themes/<name>/templates.  The profile
// page helpers (icon lookup, click formatting) are attached before parsing
// so templates can call them freely.
func (m *Manager) Load(name string) (*Theme, error) {
	root := filepath.Join(m.BaseDir, name)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("theme %s not found at %s", name, root)
	}

	// Parse with a dummy asset helper so early parsing succeeds; the real
	// prefix is injected once the Theme struct exists.
	dummyAsset := func(s string) string { return s }
	tpl := template.New("").Funcs(viewhelpers.FuncMap(dummyAsset))

	dir := filepath.Join(root, "templates")
	files, err := CollectHTML(dir)
	if err != nil {
		return nil, fmt.Errorf("scan theme %s: %w", name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("theme %s has no templates under %s", name, dir)
	}
	if _, err := tpl.ParseFiles(files...); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}

	th := New(name, root, tpl)
	tpl.Funcs(viewhelpers.FuncMap(th.AssetFunc)) // replace dummy with real prefix

	return th, nil
}
