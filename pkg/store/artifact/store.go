// Package artifact publishes rendered documents to a location the workflow
// host can serve from: a local directory or an S3 bucket.
package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/report-atlas/pkg/models/domain"
)

// Store publishes a finished local file under the given name and returns
// the location it ended up at.
type Store interface {
	Put(ctx context.Context, localPath string, name string) (string, error)
}

// Local copies artifacts into a served directory.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Put(_ context.Context, localPath string, name string) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", domain.IOf("failed to create publish dir %s: %v", l.dir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", domain.IOf("failed to open artifact %s: %v", localPath, err)
	}
	defer src.Close()

	target := filepath.Join(l.dir, name)
	dst, err := os.Create(target)
	if err != nil {
		return "", domain.IOf("failed to create %s: %v", target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(target)
		return "", domain.IOf("failed to copy artifact to %s: %v", target, err)
	}
	return target, nil
}
