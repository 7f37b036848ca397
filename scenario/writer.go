package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-img2map/tilemap"
)

var ErrTemplate = errors.New("img2map: template failed to copy")

// Writer writes scenario scripts from a template.
type Writer struct {
	filePattern  string
	templatePath string
	logger       *slog.Logger
}

type writerConfig struct {
	Logger *slog.Logger
}

type WriterOption func(*writerConfig)

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/scenarios/{name}/control.lua").
func NewWriter(filePattern, templatePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern, templatePath, config.Logger}, nil
}

// Write creates the control script of the named scenario and returns its path.
func (w *Writer) Write(name string, width, height int, m *tilemap.Map) (string, error) {
	filePath := formatPattern(w.filePattern, name)
	if err := w.WriteFile(filePath, width, height, m); err != nil {
		return "", err
	}
	return filePath, nil
}

// WriteFile copies the template to filePath and appends the image size and tile table.
func (w *Writer) WriteFile(filePath string, width, height int, m *tilemap.Map) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	w.logger.Debug("img2map: copying template", "template", w.templatePath, "path", filePath)
	if err := copyFile(w.templatePath, filePath); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplate, filePath, err)
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer file.Close()

	w.logger.Debug("img2map: writing tiles", "count", m.Len())
	if _, err := fmt.Fprintf(file, "\nwidth = %d\nheight = %d\nimg_table = ", width, height); err != nil {
		return err
	}
	if err := tilemap.WriteLua(file, m); err != nil {
		return err
	}
	return file.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	return errors.Join(err, out.Close())
}
