package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"gstbill/internal/config"
	"gstbill/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Renderer renders invoices for the configured issuing company.
type Renderer struct {
	company config.CompanyConfig
}

// New creates a Renderer.
func New(company config.CompanyConfig) *Renderer {
	return &Renderer{company: company}
}

// HTML writes the A4 print view of inv.
func (r *Renderer) HTML(w io.Writer, inv *domain.Invoice) error {
	if err := templates.ExecuteTemplate(w, "invoice.html", buildView(r.company, inv)); err != nil {
		return fmt.Errorf("render invoice html: %w", err)
	}
	return nil
}

// Envelope writes a COM-10 envelope addressed to the invoice's customer.
func (r *Renderer) Envelope(w io.Writer, inv *domain.Invoice) error {
	if err := templates.ExecuteTemplate(w, "envelope.html", buildView(r.company, inv)); err != nil {
		return fmt.Errorf("render envelope html: %w", err)
	}
	return nil
}
