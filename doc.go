// Package invoice2pdf renders legal-practice invoices to PDF.
//
// # Quick Start
//
// Create a renderer and render content:
//
//	r, err := invoice2pdf.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pdf, err := r.Render(ctx, invoice2pdf.Input{
//	    Content:  content,
//	    Practice: invoice2pdf.Party{Name: "Adv. N. Mokoena"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(invoice2pdf.Filename(content.Invoice.Number), pdf, 0644)
//
// # Rendering Pipeline
//
// Each Render call runs these stages:
//
//  1. Template resolution: the input template, the account's stored
//     default, or the renderer's default, merged over the built-in defaults
//  2. Logo resolution from inline bytes or a reference
//  3. Section drawing in fixed order: header, parties, details, narrative,
//     time entries, services, expenses, summary, footer
//  4. Serialization through go-pdf/fpdf
//
// Layout is computed entirely in code: text wrapping, columns, table
// grids and page breaks. Units are PDF points.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := invoice2pdf.NewRenderer(
//	    invoice2pdf.WithTemplateStore(store),
//	    invoice2pdf.WithLogoLoader(resolver),
//	    invoice2pdf.WithLogger(logger),
//	    invoice2pdf.WithPageSize("letter"),
//	)
//
// # Failure Handling
//
// A failing template store or logo loader never fails a render: the
// renderer logs a warning and falls back to the default template or draws
// the header without the logo. Structurally invalid templates fail with
// ErrInvalidTemplate and drawing failures with ErrRender.
//
// # Concurrency
//
// A Renderer is safe for concurrent use. Each call owns its drawing
// surface; the context is only checked before drawing begins.
package invoice2pdf
