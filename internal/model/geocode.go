package model

import "context"

// Geocoder resolves a street address to coordinates. Treated as
// untrusted: failures propagate to the caller unchanged.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}
