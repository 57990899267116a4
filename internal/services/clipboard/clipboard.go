// Package clipboard delivers the assembled document to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier places textual content on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service is the production Copier backed by github.com/atotto/clipboard.
type Service struct{}

// NewService returns the platform clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy places text on the system clipboard, replacing its current content.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard mechanism exists on this platform.
func (service *Service) Available() bool {
	return !clipboard.Unsupported
}

var _ Copier = (*Service)(nil)
