package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png *.atlas
var assetsFS embed.FS

// MissingAssetError reports an image or atlas that is absent or has no
// frames.
type MissingAssetError struct {
	Name   string
	Reason string
	Err    error
}

func (e *MissingAssetError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("assets: missing %q", e.Name)
	}
	return fmt.Sprintf("assets: missing %q: %s", e.Name, e.Reason)
}

func (e *MissingAssetError) Unwrap() error {
	return e.Err
}

var (
	imageCacheMu sync.Mutex
	imageCache   = map[string]*ebiten.Image{}
	atlasCache   = map[string][]*ebiten.Image{}
)

// FS exposes the embedded assets.
func FS() fs.FS {
	return assetsFS
}

// LoadImage loads an embedded image by assets-relative path. Images are
// decoded once and shared.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)

	imageCacheMu.Lock()
	defer imageCacheMu.Unlock()
	if img, ok := imageCache[clean]; ok {
		return img, nil
	}

	decoded, err := DecodeImage(assetsFS, clean)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(decoded)
	imageCache[clean] = img
	return img, nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadAtlas loads the frames of a texture atlas as ebiten images, in frame
// order.
func LoadAtlas(name string) ([]*ebiten.Image, error) {
	imageCacheMu.Lock()
	defer imageCacheMu.Unlock()
	if frames, ok := atlasCache[name]; ok {
		return frames, nil
	}

	decoded, err := DecodeAtlas(assetsFS, name)
	if err != nil {
		return nil, err
	}
	frames := make([]*ebiten.Image, 0, len(decoded))
	for _, img := range decoded {
		frames = append(frames, ebiten.NewImageFromImage(img))
	}
	atlasCache[name] = frames
	return frames, nil
}

// DecodeImage reads and decodes one image from fsys.
func DecodeImage(fsys fs.FS, name string) (image.Image, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingAssetError{Name: name, Err: err}
		}
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return img, nil
}

// DecodeAtlas reads the atlas directory <name>.atlas. It holds n images
// named <name>_0.png through <name>_<n-1>.png; frames are returned in that
// order. An absent or empty atlas, or a gap in the numbering, fails with
// *MissingAssetError.
func DecodeAtlas(fsys fs.FS, name string) ([]image.Image, error) {
	dir := name + ".atlas"
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, &MissingAssetError{Name: name, Reason: "atlas not found", Err: err}
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(path.Ext(entry.Name()), ".png") {
			count++
		}
	}
	if count == 0 {
		return nil, &MissingAssetError{Name: name, Reason: "atlas has no frames"}
	}

	frames := make([]image.Image, 0, count)
	for i := 0; i < count; i++ {
		frameName := fmt.Sprintf("%s_%d.png", name, i)
		img, err := DecodeImage(fsys, path.Join(dir, frameName))
		if err != nil {
			var missing *MissingAssetError
			if errors.As(err, &missing) {
				return nil, &MissingAssetError{Name: name, Reason: "missing frame " + frameName, Err: err}
			}
			return nil, err
		}
		frames = append(frames, img)
	}
	return frames, nil
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if filepath.IsAbs(p) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	return strings.TrimPrefix(s, "assets/")
}
