package professionalsdb

import "errors"

// Sentinel errors for the professionals repository layer. Lookups of a
// missing row are not errors; getters return (nil, nil) instead.
var (
	// ErrDuplicateParticipant indicates an insert hit an existing discord_id.
	ErrDuplicateParticipant = errors.New("participant already exists")

	// ErrDuplicateContract indicates an insert hit an existing contract.
	ErrDuplicateContract = errors.New("contract already exists")
)
