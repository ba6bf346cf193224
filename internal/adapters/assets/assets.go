// Package assets copies static files and templates into the output directory and
// provides the default theme.
package assets

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/tome/internal/adapters/fs"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Finisher = (*Finisher)(nil)

//go:embed theme
var theme embed.FS

// defaults are written into the output static directory unless a project file
// of the same name was copied there.
var defaults = []string{"theme.css", "search.js"}

// Finisher copies the configured static and template directories.
type Finisher struct {
	walker *fs.Walker
	logger ports.Logger
}

// NewFinisher creates a new assets Finisher.
func NewFinisher(walker *fs.Walker, logger ports.Logger) *Finisher {
	return &Finisher{walker: walker, logger: logger}
}

// Name returns the finisher name.
func (f *Finisher) Name() string {
	return "static-assets"
}

// Finish copies every static directory into <output>/_static and every template
// directory into <output>/_templates, then adds the default theme files.
func (f *Finisher) Finish(ctx context.Context, site *domain.Site) error {
	staticOut := filepath.Join(site.OutputDir, domain.StaticDirName)

	for _, dir := range site.Config.StaticDirs {
		if err := f.copyTree(ctx, filepath.Join(site.SourceDir, dir), staticOut); err != nil {
			return err
		}
	}
	for _, dir := range site.Config.TemplateDirs {
		if err := f.copyTree(ctx, filepath.Join(site.SourceDir, dir), filepath.Join(site.OutputDir, domain.TemplatesDirName)); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(staticOut, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCreateOutputFailed, err.Error()), "path", staticOut)
	}
	for _, name := range defaults {
		dst := filepath.Join(staticOut, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		data, err := theme.ReadFile("theme/" + name)
		if err != nil {
			return zerr.Wrap(err, "failed to read embedded theme")
		}
		if err := os.WriteFile(dst, data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", dst)
		}
	}
	return nil
}

func (f *Finisher) copyTree(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		f.logger.Debug("asset directory not found, skipping " + src)
		return nil
	}

	copied := 0
	for path := range f.walker.WalkFiles(src, nil) {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve asset path"), "path", path)
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		copied++
	}
	f.logger.Debug(fmt.Sprintf("copied %d assets from %s to %s", copied, src, dst))
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCreateOutputFailed, err.Error()), "path", filepath.Dir(dst))
	}

	in, err := os.Open(src) //nolint:gosec // src comes from walking a configured asset directory
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrReadSourceFailed, err.Error()), "path", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // dst is inside the output directory
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", dst)
	}
	return nil
}
