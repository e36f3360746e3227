package render

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// pdfConverter is the librsvg command line tool. It reads SVG on stdin.
const pdfConverter = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert. Without the
// tool on PATH it fails with ErrCodeUnsupported.
func ToPDF(svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(pdfConverter)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"pdf output needs %s (brew install librsvg, or apt install librsvg2-bin)", pdfConverter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", pdfConverter, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
