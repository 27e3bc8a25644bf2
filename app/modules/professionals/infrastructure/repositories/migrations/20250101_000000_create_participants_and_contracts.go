package professionalsmigrations

import (
	"context"
	"fmt"

	professionalsdb "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating participants and contracts tables...")
			models := []any{
				(*professionalsdb.Participant)(nil),
				(*professionalsdb.Contract)(nil),
			}
			for _, model := range models {
				if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create table: %w", err)
				}
			}
			fmt.Println("participants and contracts tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping participants and contracts tables...")
			models := []any{
				(*professionalsdb.Contract)(nil),
				(*professionalsdb.Participant)(nil),
			}
			for _, model := range models {
				if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop table: %w", err)
				}
			}
			fmt.Println("participants and contracts tables dropped successfully!")
			return nil
		},
	)
}
