// Package pinning provides the content-addressed blob store capability used
// for artifact content and data-export blobs. Implementations are injected
// into services so core logic can be tested with a substitute and no network
// dependency.
package pinning

import "context"

// Pinner stores and retrieves immutable blobs by content identifier.
type Pinner interface {
	// Put stores the content and returns its CID. Putting the same bytes
	// twice returns the same CID.
	Put(ctx context.Context, content []byte) (string, error)

	// Get retrieves content previously stored under cid.
	Get(ctx context.Context, cid string) ([]byte, error)
}
