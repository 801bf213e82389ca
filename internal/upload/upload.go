// Package upload accepts profile picture uploads.
package upload

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProfilePictureField is the multipart field carrying the profile picture.
const ProfilePictureField = "profile_picture"

// AllowedExtensions lists the accepted image extensions, lower case.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Allowed reports whether filename carries an accepted extension.
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename reduces a client-supplied name to a flat ASCII file name
// that cannot escape the upload directory. It may return "".
func SecureFilename(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, name)
	if err != nil {
		return ""
	}

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeChars.ReplaceAllString(ascii, "")
	return strings.Trim(ascii, "._")
}

// Save stores the file sent in field under dir and returns the stored name.
// It returns "" with a nil error when there is nothing acceptable to store.
func Save(c *gin.Context, field, dir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	if file.Filename == "" || !Allowed(file.Filename) {
		return "", nil
	}

	filename := SecureFilename(file.Filename)
	if filename == "" || !Allowed(filename) {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return filename, nil
}
