package rename

import "strings"

// PNGExt is the only extension, compared case-insensitively, that is renamed.
const PNGExt = "png"

// SplitName splits a filename at its last '.' into base and extension, the
// extension without its dot. Leading dots belong to the base, so ".png" and
// "..png" have no extension. A name without a usable '.' returns the whole
// name as base and an empty extension.
func SplitName(name string) (base, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || strings.Trim(name[:i], ".") == "" {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// IsPNG reports whether ext, without a leading dot, names a PNG file.
func IsPNG(ext string) bool {
	return strings.ToLower(ext) == PNGExt
}

// NormalizeBase replaces every '.' and then every ' ' in base with '_'.
func NormalizeBase(base string) string {
	base = strings.ReplaceAll(base, ".", "_")
	return strings.ReplaceAll(base, " ", "_")
}

// NormalizedName returns the normalized form of a PNG filename and whether
// it differs from name. Non-PNG names are returned unchanged.
func NormalizedName(name string) (string, bool) {
	base, ext := SplitName(name)
	if !IsPNG(ext) {
		return name, false
	}
	newBase := NormalizeBase(base)
	if newBase == base {
		return name, false
	}
	return newBase + "." + ext, true
}
