package professionalsdb

import (
	"time"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/uptrace/bun"
)

// Participant is a registered competitor or coach.
type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:p"`
	DiscordID     professionalsdomain.DiscordID `bun:"discord_id,pk" json:"discord_id"`
	FirstName     string                        `bun:"first_name,notnull" json:"first_name"`
	LastName      string                        `bun:"last_name,notnull" json:"last_name"`
	IsCoach       bool                          `bun:"is_coach,notnull,default:false" json:"is_coach"`
	CreatedAt     time.Time                     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time                     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Contract is a participant's pledge for the current competition. A contract
// row may outlive its participant row; nothing joins the two in the database.
type Contract struct {
	bun.BaseModel `bun:"table:contracts,alias:c"`
	DiscordID     professionalsdomain.DiscordID `bun:"discord_id,pk" json:"discord_id"`
	Amount        int64                         `bun:"amount,notnull" json:"amount"`
	CreatedAt     time.Time                     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time                     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (p *Participant) ToDomain() professionalsdomain.Participant {
	return professionalsdomain.Participant{
		DiscordID: p.DiscordID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IsCoach:   p.IsCoach,
	}
}

func (c *Contract) ToDomain() professionalsdomain.Contract {
	return professionalsdomain.Contract{DiscordID: c.DiscordID, Amount: c.Amount}
}

func ParticipantFromDomain(p professionalsdomain.Participant) *Participant {
	return &Participant{
		DiscordID: p.DiscordID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IsCoach:   p.IsCoach,
	}
}

func ContractFromDomain(c professionalsdomain.Contract) *Contract {
	return &Contract{DiscordID: c.DiscordID, Amount: c.Amount}
}
