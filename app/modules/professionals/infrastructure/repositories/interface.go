package professionalsdb

import (
	"context"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for participants and contracts.
//
// Error semantics:
//   - Get* return (nil, nil) when the row does not exist
//   - ErrDuplicateParticipant / ErrDuplicateContract: Insert* hit an existing key
//   - other errors: infrastructure failures
//
// A nil db runs against the repository's own connection.
type Repository interface {
	// Participants
	InsertParticipant(ctx context.Context, db bun.IDB, p *Participant) error
	UpsertParticipant(ctx context.Context, db bun.IDB, p *Participant) error
	GetParticipant(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*Participant, error)
	GetAllParticipants(ctx context.Context, db bun.IDB) ([]*Participant, error)
	DeleteParticipant(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error
	DeleteAllParticipants(ctx context.Context, db bun.IDB) error

	// Contracts
	InsertContract(ctx context.Context, db bun.IDB, c *Contract) error
	UpsertContract(ctx context.Context, db bun.IDB, c *Contract) error
	GetContract(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*Contract, error)
	GetAllContracts(ctx context.Context, db bun.IDB) ([]*Contract, error)
	DeleteContract(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error
	DeleteAllContracts(ctx context.Context, db bun.IDB) error
}
