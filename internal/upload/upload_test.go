package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAllowed(t *testing.T) {
	tests := map[string]bool{
		"avatar.png":     true,
		"avatar.JPG":     true,
		"photo.jpeg":     true,
		"anim.Gif":       true,
		"archive.tar.gz": false,
		"script.png.exe": false,
		"noextension":    false,
		"trailingdot.":   false,
		".png":           true,
	}
	for name, want := range tests {
		if got := Allowed(name); got != want {
			t.Fatalf("Allowed(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSecureFilename(t *testing.T) {
	tests := map[string]string{
		"My cool movie.mov":       "My_cool_movie.mov",
		"../../../etc/passwd":     "etc_passwd",
		"ümlaut.png":              "umlaut.png",
		"  spaced  out .png ":     "spaced_out_.png",
		"...":                     "",
		"C:\\Users\\me\\face.jpg": "C_Users_me_face.jpg",
	}
	for in, want := range tests {
		if got := SecureFilename(in); got != want {
			t.Fatalf("SecureFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func newUploadContext(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(content)
	}
	w.WriteField("username", "harry")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestSave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := filepath.Join(t.TempDir(), "uploads")

	c := newUploadContext(t, ProfilePictureField, "my face.PNG", []byte("fake-png"))
	name, err := Save(c, ProfilePictureField, dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if name != "my_face.PNG" {
		t.Fatalf("expected sanitised name, got %q", name)
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(b) != "fake-png" {
		t.Fatalf("unexpected stored content %q", b)
	}
}

func TestSaveSkipsUnacceptableUploads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	tests := []struct {
		name     string
		field    string
		filename string
	}{
		{name: "no file", field: ""},
		{name: "other field", field: "document", filename: "face.png"},
		{name: "bad extension", field: ProfilePictureField, filename: "shell.php"},
	}
	for _, tc := range tests {
		c := newUploadContext(t, tc.field, tc.filename, []byte("x"))
		name, err := Save(c, ProfilePictureField, dir)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if name != "" {
			t.Fatalf("%s: expected nothing stored, got %q", tc.name, name)
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty upload dir, found %d entries", len(entries))
	}
}

func TestSaveNonMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=harry"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	name, err := Save(c, ProfilePictureField, t.TempDir())
	if err != nil || name != "" {
		t.Fatalf("expected no upload, got %q, %v", name, err)
	}
}
