// Package fonts provides font file resolution and approximate text
// measurement for the layout engine. Resolution walks a ranked list of
// candidate files across configurable directories instead of hardcoding
// platform paths.
package fonts

import (
	"os"
	"path/filepath"
	"runtime"
)

// Candidate names a font file to look for and the family alias to register
// it under. Candidates earlier in the list win.
type Candidate struct {
	FileName string
	Alias    string
}

// DefaultCandidates lists CJK-capable fonts commonly present on each OS
// family, best first.
var DefaultCandidates = []Candidate{
	{FileName: "msyh.ttf", Alias: "MicrosoftYaHei"},
	{FileName: "simsun.ttc", Alias: "SimSun"},
	{FileName: "simhei.ttf", Alias: "SimHei"},
	{FileName: "NotoSansCJK-Regular.ttc", Alias: "NotoSansCJK"},
	{FileName: "DejaVuSans.ttf", Alias: "DejaVuSans"},
}

// Resolver finds usable font files from a ranked directory list.
type Resolver struct {
	dirs       []string
	candidates []Candidate
}

// NewResolver builds a resolver searching the given directories in order,
// followed by OS defaults. Pass no directories to search only the defaults.
func NewResolver(dirs ...string) *Resolver {
	return &Resolver{
		dirs:       append(append([]string{}, dirs...), defaultFontDirs()...),
		candidates: DefaultCandidates,
	}
}

// WithCandidates overrides the ranked candidate list.
func (r *Resolver) WithCandidates(candidates []Candidate) *Resolver {
	r.candidates = candidates
	return r
}

// Resolve returns the first candidate font file that exists, along with its
// alias. ok is false when no candidate is found; callers fall back to the
// renderer's built-in font.
func (r *Resolver) Resolve() (path, alias string, ok bool) {
	for _, c := range r.candidates {
		for _, dir := range r.dirs {
			p := filepath.Join(dir, c.FileName)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, c.Alias, true
			}
		}
	}
	return "", "", false
}

func defaultFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`}
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts"}
	default:
		return []string{
			"/usr/share/fonts/truetype",
			"/usr/share/fonts/opentype",
			"/usr/share/fonts",
		}
	}
}
