package project

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EncodeName encodes a single directory name the way the claude CLI does:
// every rune that is not a letter or digit becomes a hyphen.
func EncodeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// EncodePath encodes a full absolute path into a projects-dir entry name.
func EncodePath(path string) string {
	return EncodeName(path)
}

// homePrefix is the user's home directory in encoded form, without the
// leading hyphen. "/home/user" -> "home-user", `C:\Users\user` -> "C--Users-user".
func homePrefix() string {
	home, _ := os.UserHomeDir()
	return strings.TrimLeft(EncodeName(home), "-")
}

// splitRoot breaks an encoded name into a filesystem root to search from and
// the remaining hyphen-joined parts. ok is false when the name has no
// recognizable root (relative junk), in which case only the literal decode
// and home fallback apply.
func splitRoot(encoded string) (root, remaining string, ok bool) {
	if len(encoded) >= 3 && encoded[1] == '-' && encoded[2] == '-' && isAlpha(encoded[0]) {
		// Windows drive: "C--Users-korbo-Docs"
		return string(encoded[0]) + ":" + string(os.PathSeparator), encoded[3:], true
	}
	if strings.HasPrefix(encoded, "-") {
		return string(os.PathSeparator), encoded[1:], true
	}
	return "", "", false
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// literalDecode reconstructs a path assuming every hyphen was a separator.
// This is the common case; names that really contain hyphens need ResolveParts.
func literalDecode(encoded string) string {
	if len(encoded) >= 3 && encoded[1] == '-' && encoded[2] == '-' && isAlpha(encoded[0]) {
		return string(encoded[0]) + ":/" + strings.ReplaceAll(encoded[3:], "-", "/")
	}
	return strings.ReplaceAll(encoded, "-", "/")
}

// ResolveParts walks the real filesystem from root, matching hyphen-split
// parts against re-encoded directory entries. Longer runs are tried first so
// entries whose names contain hyphens, underscores or spaces win over a
// separator interpretation of the same bytes.
func ResolveParts(root string, parts []string) (string, bool) {
	if len(parts) == 0 {
		return root, true
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	for length := len(parts); length >= 1; length-- {
		target := strings.Join(parts[:length], "-")
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if EncodeName(entry.Name()) != target {
				continue
			}
			if resolved, ok := ResolveParts(filepath.Join(root, entry.Name()), parts[length:]); ok {
				return resolved, true
			}
		}
	}
	return "", false
}

// DecodeDir decodes a projects-dir entry back to the real filesystem path.
// It accepts either the bare entry name or its full path inside the projects
// directory. The encoding is lossy, so this is a search: literal decode
// first, then a filesystem walk over candidate reconstructions, then a
// best-effort fallback under the home directory. missing reports that no
// existing directory matched.
func DecodeDir(encoded string) (path string, missing bool) {
	encoded = filepath.Base(encoded)

	if dir := literalDecode(encoded); isDir(dir) {
		return dir, false
	}

	if root, remaining, ok := splitRoot(encoded); ok && remaining != "" {
		if resolved, ok := ResolveParts(root, strings.Split(remaining, "-")); ok && isDir(resolved) {
			return resolved, false
		}
	}

	// Fall back to a path under home, keeping whatever suffix survives the
	// home prefix. The caller shows these flagged as missing.
	home, _ := os.UserHomeDir()
	prefix := homePrefix()
	var suffix string
	switch {
	case strings.HasPrefix(encoded, "-"+prefix+"-"):
		suffix = encoded[len(prefix)+2:]
	case encoded == "-"+prefix || encoded == prefix:
		return home, false
	case strings.HasPrefix(encoded, prefix+"-"):
		suffix = encoded[len(prefix)+1:]
	}
	if suffix == "" {
		return home, true
	}
	candidate := filepath.Join(home, strings.ReplaceAll(suffix, "-", string(os.PathSeparator)))
	if isDir(candidate) {
		return candidate, false
	}
	return candidate, true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// DisplayName renders a decoded path for the project list, shortening the
// home directory to "~".
func DisplayName(realPath string) string {
	home, _ := os.UserHomeDir()
	if realPath == home {
		return "~"
	}
	if strings.HasPrefix(realPath, home+string(os.PathSeparator)) {
		return "~/" + filepath.ToSlash(realPath[len(home)+1:])
	}
	if runtime.GOOS != "windows" {
		return realPath
	}
	return filepath.ToSlash(realPath)
}
