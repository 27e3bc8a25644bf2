package professionalsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new professionals repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// insertOnce inserts model unless its primary key is taken, reporting
// whether a row was written.
func insertOnce(ctx context.Context, db bun.IDB, model any) (bool, error) {
	result, err := db.NewInsert().
		Model(model).
		On("CONFLICT (discord_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// InsertParticipant registers a new participant.
func (r *Impl) InsertParticipant(ctx context.Context, db bun.IDB, p *Participant) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	inserted, err := insertOnce(ctx, db, p)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	if !inserted {
		return ErrDuplicateParticipant
	}
	return nil
}

// UpsertParticipant creates or replaces a participant.
func (r *Impl) UpsertParticipant(ctx context.Context, db bun.IDB, p *Participant) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := db.NewInsert().
		Model(p).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("first_name = EXCLUDED.first_name").
		Set("last_name = EXCLUDED.last_name").
		Set("is_coach = EXCLUDED.is_coach").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert participant: %w", err)
	}
	return nil
}

// GetParticipant returns nil when the participant is not registered.
func (r *Impl) GetParticipant(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*Participant, error) {
	db = r.resolveDB(db)
	p := new(Participant)
	err := db.NewSelect().
		Model(p).
		Where("discord_id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

func (r *Impl) GetAllParticipants(ctx context.Context, db bun.IDB) ([]*Participant, error) {
	db = r.resolveDB(db)
	participants := make([]*Participant, 0)
	err := db.NewSelect().
		Model(&participants).
		Order("created_at ASC", "discord_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// DeleteParticipant removes the participant and any contract they hold.
// Pass a transaction to make both deletes atomic.
func (r *Impl) DeleteParticipant(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().Model((*Participant)(nil)).Where("discord_id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if _, err := db.NewDelete().Model((*Contract)(nil)).Where("discord_id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete participant contract: %w", err)
	}
	return nil
}

func (r *Impl) DeleteAllParticipants(ctx context.Context, db bun.IDB) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().Model((*Participant)(nil)).Where("TRUE").Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	return nil
}

// InsertContract records a new contract.
func (r *Impl) InsertContract(ctx context.Context, db bun.IDB, c *Contract) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	inserted, err := insertOnce(ctx, db, c)
	if err != nil {
		return fmt.Errorf("failed to insert contract: %w", err)
	}
	if !inserted {
		return ErrDuplicateContract
	}
	return nil
}

// UpsertContract creates or replaces a participant's contract.
func (r *Impl) UpsertContract(ctx context.Context, db bun.IDB, c *Contract) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := db.NewInsert().
		Model(c).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("amount = EXCLUDED.amount").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert contract: %w", err)
	}
	return nil
}

// GetContract returns nil when the participant holds no contract.
func (r *Impl) GetContract(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*Contract, error) {
	db = r.resolveDB(db)
	c := new(Contract)
	err := db.NewSelect().
		Model(c).
		Where("discord_id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

func (r *Impl) GetAllContracts(ctx context.Context, db bun.IDB) ([]*Contract, error) {
	db = r.resolveDB(db)
	contracts := make([]*Contract, 0)
	err := db.NewSelect().
		Model(&contracts).
		Order("created_at ASC", "discord_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (r *Impl) DeleteContract(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().Model((*Contract)(nil)).Where("discord_id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}

func (r *Impl) DeleteAllContracts(ctx context.Context, db bun.IDB) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().Model((*Contract)(nil)).Where("TRUE").Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete contracts: %w", err)
	}
	return nil
}
