package assetname

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoID reports a filename that does not carry an embedded asset id.
var ErrNoID = errors.New("filename carries no asset id")

// separatorReplacer keeps the encoded name a single path element.
var separatorReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	"\x00", "",
)

// SanitizeName replaces every whitespace character in a remote file name with
// an underscore so the name occupies exactly one token.
func SanitizeName(name string) string {
	name = separatorReplacer.Replace(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// Encode produces the local filename for an asset.
func Encode(name, id string) string {
	n := SanitizeName(name)
	return n + " " + id + " " + n
}

// Decode returns the asset id embedded in filename. Filenames with fewer than
// two whitespace-delimited tokens yield ErrNoID; callers treat that as a file
// without a remote counterpart.
func Decode(filename string) (string, error) {
	tokens := strings.Fields(filename)
	if len(tokens) < 2 {
		return "", ErrNoID
	}
	return tokens[1], nil
}
