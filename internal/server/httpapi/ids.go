package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
)

// Identifiers are uuid columns in Postgres; a malformed value would surface
// as a driver error deep in the repository layer, so they are rejected at
// the edge instead.

// pathID extracts the {id} segment and validates it. A malformed id can
// never name a resource, so it reads as not found.
func pathID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", common.ErrorNotFound
	}
	return id, nil
}

// requireID validates a client-supplied reference id from a request body.
func requireID(field, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", common.ErrorValidation, field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s must be a valid id", common.ErrorValidation, field)
	}
	return nil
}

// optionalID validates an id-valued query filter; empty means unfiltered.
func optionalID(field, id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s must be a valid id", common.ErrorValidation, field)
	}
	return nil
}
