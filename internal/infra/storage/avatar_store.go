package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const avatarDir = "profileimage"

// FileAvatarStore はアバター画像をローカルディレクトリに保存する。
// 返すパスはメディアルートからの相対パス。
type FileAvatarStore struct {
	root string
}

func NewFileAvatarStore(root string) (*FileAvatarStore, error) {
	if err := os.MkdirAll(filepath.Join(root, avatarDir), 0o755); err != nil {
		return nil, err
	}
	return &FileAvatarStore{root: root}, nil
}

// Save は「data:image/<ext>;base64,<payload>」形式のdataURIを
// デコードして一意なファイル名で保存する。
func (s *FileAvatarStore) Save(dataURI string) (string, error) {
	meta, payload, ok := strings.Cut(dataURI, ";base64,")
	if !ok {
		return "", errors.New("not a base64 data uri")
	}

	// "data:image/png" -> "png"
	ext := meta[strings.LastIndex(meta, "/")+1:]
	if ext == "" {
		return "", errors.New("missing image extension")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	fullPath := filepath.Join(s.root, avatarDir, filename)

	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(avatarDir, filename)), nil
}
