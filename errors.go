package mdserve

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown     = errors.New("markdown content cannot be empty")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrHTMLConversion    = errors.New("HTML conversion failed")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrDocxGeneration    = errors.New("DOCX generation failed")
	ErrDiagramRender     = errors.New("diagram rendering failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Header and footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Theme errors.
	ErrUnknownTheme = errors.New("unknown theme")

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool is closed")
)
