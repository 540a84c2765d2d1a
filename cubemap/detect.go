package cubemap

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// AliasTable maps each face to the patterns that identify it in a filename.
// Patterns are regular expressions tried in order against the lowercased
// name.
type AliasTable [FaceCount][]*regexp.Regexp

// DefaultAliases is the alias table used by Detect.
var DefaultAliases = MustCompileAliases(map[FaceID][]string{
	PosX: {"posx", "left", "[-_]lf"},
	NegX: {"negx", "right", "[-_]rt"},
	PosY: {"posy", "top", "[-_]tp", "up", "[-_]up"},
	NegY: {"negy", "bottom", "[-_]bt", "down", "[-_]dn"},
	PosZ: {"posz", "front", "[-_]ft"},
	NegZ: {"negz", "back", "[-_]bk"},
})

// CompileAliases builds an AliasTable. Every face needs at least one alias.
func CompileAliases(aliases map[FaceID][]string) (AliasTable, error) {
	var t AliasTable
	for _, id := range FaceIDs {
		pats := aliases[id]
		if len(pats) == 0 {
			return t, fmt.Errorf("cubemap: no alias for %s", id)
		}
		for _, p := range pats {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return t, err
			}
			t[id] = append(t[id], re)
		}
	}
	return t, nil
}

// MustCompileAliases is CompileAliases that panics on error.
func MustCompileAliases(aliases map[FaceID][]string) AliasTable {
	t, err := CompileAliases(aliases)
	if err != nil {
		panic(err)
	}
	return t
}

// Assignment maps faces to the file chosen for them. Faces with no file are
// absent.
type Assignment map[FaceID]string

// Get returns the file assigned to id, if any.
func (a Assignment) Get(id FaceID) (string, bool) {
	f, ok := a[id]
	return f, ok
}

// Missing returns the unassigned faces in declaration order.
func (a Assignment) Missing() []FaceID {
	var out []FaceID
	for _, id := range FaceIDs {
		if _, ok := a[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Complete reports whether all six faces are assigned.
func (a Assignment) Complete() bool { return len(a) == FaceCount }

// Detect assigns filenames to faces using DefaultAliases.
func Detect(filenames []string) (Assignment, error) {
	return DefaultAliases.Detect(filenames)
}

// Detect assigns filenames to faces. For each filename, every face takes the
// name if any of its aliases matches; a later filename replaces an earlier
// one for the same face, and one filename may be taken by several faces.
// ErrNoMatch is returned when nothing matched at all.
func (t AliasTable) Detect(filenames []string) (Assignment, error) {
	return t.detect(filenames, filenames)
}

// DetectPaths is Detect over the base names of paths. The assignment holds
// the full paths.
func DetectPaths(paths []string) (Assignment, error) {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return DefaultAliases.detect(names, paths)
}

func (t AliasTable) detect(names, refs []string) (Assignment, error) {
	a := make(Assignment, FaceCount)
	for i, name := range names {
		name = strings.ToLower(name)
		for _, id := range FaceIDs {
			for _, re := range t[id] {
				if re.MatchString(name) {
					a[id] = refs[i]
					break
				}
			}
		}
	}
	if len(a) == 0 {
		return nil, ErrNoMatch
	}
	return a, nil
}
