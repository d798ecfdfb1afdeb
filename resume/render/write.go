package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type tempFile interface {
	io.Writer
	Name() string
	Sync() error
	Close() error
}

var (
	createTemp = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	rename     = os.Rename
)

// WriteFile encodes the document and publishes it at path. The bytes go to a
// temporary file in the destination directory first and are renamed into
// place only after a successful sync, so readers never observe a partial
// document. It returns the absolute path of the written file.
func WriteFile(doc RenderedDocument, path string) (string, error) {
	if path == "" {
		return "", targetError(StageTarget, path, errEmptyPath)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return "", targetError(StageTarget, path, err)
	}

	content, err := EncodeDOCX(doc)
	if err != nil {
		var renderErr *RenderError
		if errors.As(err, &renderErr) {
			renderErr.Path = target
			return "", renderErr
		}
		return "", formatError(err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", targetError(StageTarget, target, err)
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return "", targetError(StageTarget, target, fmt.Errorf("target is a directory"))
	}

	tmp, err := createTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", targetError(StageTarget, target, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return "", targetError(StageWrite, target, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", targetError(StageWrite, target, err)
	}
	if err := tmp.Close(); err != nil {
		return "", targetError(StageWrite, target, err)
	}
	if err := rename(tmp.Name(), target); err != nil {
		return "", targetError(StageCommit, target, err)
	}
	committed = true
	return target, nil
}
