package handlers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"orusweb/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxFileSize bounds one uploaded document.
const maxFileSize = 5 << 20

var errFileTooLarge = errors.New("file too large")

// multipartForm splits a multipart body into its text values and files.
// A request that is not multipart yields empty values and no files.
func multipartForm(c *fiber.Ctx) (map[string]string, []models.KYCFile, error) {
	values := map[string]string{}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return values, nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}

	for name, vs := range form.Value {
		if len(vs) > 0 {
			values[name] = vs[0]
		}
	}

	names := make([]string, 0, len(form.File))
	for name := range form.File {
		names = append(names, name)
	}
	sort.Strings(names)

	var files []models.KYCFile
	for _, name := range names {
		for _, fh := range form.File[name] {
			if fh.Size > maxFileSize {
				return nil, nil, fmt.Errorf("%s: %w", fh.Filename, errFileTooLarge)
			}
			f, err := fh.Open()
			if err != nil {
				return nil, nil, err
			}
			content, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
			f.Close()
			if err != nil {
				return nil, nil, err
			}
			files = append(files, models.KYCFile{Field: name, FileName: fh.Filename, Content: content})
		}
	}
	return values, files, nil
}
