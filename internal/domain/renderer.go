package domain

import "context"

// Renderer opens pages in a rendering engine
type Renderer interface {
	// Open navigates to url and waits for the page to settle
	Open(ctx context.Context, url string) (Page, error)
}

// Page is a rendered document that can be queried with CSS selectors
type Page interface {
	// Properties returns the named property (or attribute when the property
	// is not a string) of every element matching selector, in document order
	Properties(ctx context.Context, selector, name string) ([]string, error)

	// TextContents returns the text content of every element matching selector
	TextContents(ctx context.Context, selector string) ([]string, error)

	// Close releases the page
	Close() error
}
