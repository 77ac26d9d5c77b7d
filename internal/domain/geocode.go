package domain

import "context"

// ZipLocation is the place a US ZIP code resolves to.
type ZipLocation struct {
	Zip   string `json:"zip"`
	City  string `json:"city"`
	State string `json:"state"`
}

// ZipLookup resolves ZIP codes. Implementations return ErrZipNotFound for
// unknown codes and ErrGeocoderUnavailable when the provider cannot answer.
type ZipLookup interface {
	Lookup(ctx context.Context, zip string) (*ZipLocation, error)
}

// ZipInvalidator is implemented by lookups that cache answers.
type ZipInvalidator interface {
	Invalidate(ctx context.Context, zip string) error
}
