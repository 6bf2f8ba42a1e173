package profiles

import "strings"

var deckExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".txt":  true,
}

// IsDeckExt returns true if the extension is a supported deck file format.
func IsDeckExt(ext string) bool {
	return deckExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of supported deck formats.
func SupportedExtsList() string {
	return ".yaml, .yml, .json, .txt"
}
