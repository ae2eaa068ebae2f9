package brand

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"
)

const DefaultBrand = "Ocean Pro"

//go:embed header.html
var headerHTML string

var headerTemplate = template.Must(template.New("brand_header").Parse(headerHTML))

// Header is the static brand banner shown above the login card.
type Header struct {
	Brand   string
	Tagline string
}

func (h Header) Render(w io.Writer) error {
	if h.Brand == "" {
		h.Brand = DefaultBrand
	}
	return headerTemplate.Execute(w, h)
}

func (h Header) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
