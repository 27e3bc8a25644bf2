package professionalsservice

import (
	"context"
	"errors"
	"fmt"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	professionalsdb "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/repositories"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
	"github.com/uptrace/bun"
)

type participantResult = results.OperationResult[professionalsdomain.Participant, error]
type idResult = results.OperationResult[professionalsdomain.DiscordID, error]

func asValidationErrors(err error) professionalsdomain.ValidationErrors {
	var verrs professionalsdomain.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return professionalsdomain.ValidationErrors{{Field: "discord_id", Message: err.Error()}}
}

// validateParticipantRequest parses the identifier and checks both names,
// reporting every problem at once.
func validateParticipantRequest(req ParticipantRequest, coach bool) (professionalsdomain.Participant, professionalsdomain.ValidationErrors) {
	var errs professionalsdomain.ValidationErrors

	id, err := professionalsdomain.ParseDiscordID(req.DiscordID)
	if err != nil {
		errs = append(errs, asValidationErrors(err)...)
	}

	p := professionalsdomain.Participant{
		DiscordID: id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsCoach:   coach,
	}
	errs = append(errs, professionalsdomain.ValidateParticipant(p)...)
	if len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

// ParticipateAsPlayer enrolls the caller as a competing player.
func (s *ProfessionalsService) ParticipateAsPlayer(ctx context.Context, req ParticipantRequest) (participantResult, error) {
	return withTelemetry(s, ctx, "ParticipateAsPlayer", req.DiscordID, func(ctx context.Context) (participantResult, error) {
		p, verrs := validateParticipantRequest(req, false)
		if verrs != nil {
			return results.FailureResult[professionalsdomain.Participant, error](verrs), nil
		}

		if err := s.repo.UpsertParticipant(ctx, nil, professionalsdb.ParticipantFromDomain(p)); err != nil {
			return participantResult{}, fmt.Errorf("failed to save participant: %w", err)
		}
		return results.SuccessResult[professionalsdomain.Participant, error](p), nil
	})
}

// ParticipateAsCoach enrolls the caller as a coach. Coaches cannot hold
// contracts, so any existing contract is removed.
func (s *ProfessionalsService) ParticipateAsCoach(ctx context.Context, req ParticipantRequest) (participantResult, error) {
	return withTelemetry(s, ctx, "ParticipateAsCoach", req.DiscordID, func(ctx context.Context) (participantResult, error) {
		p, verrs := validateParticipantRequest(req, true)
		if verrs != nil {
			return results.FailureResult[professionalsdomain.Participant, error](verrs), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (participantResult, error) {
			if err := s.repo.UpsertParticipant(ctx, db, professionalsdb.ParticipantFromDomain(p)); err != nil {
				return participantResult{}, fmt.Errorf("failed to save coach: %w", err)
			}
			if err := s.repo.DeleteContract(ctx, db, p.DiscordID); err != nil {
				return participantResult{}, fmt.Errorf("failed to remove coach contract: %w", err)
			}
			return results.SuccessResult[professionalsdomain.Participant, error](p), nil
		})
	})
}

// EndParticipation removes the participant and their contract. Missing rows
// are not an error.
func (s *ProfessionalsService) EndParticipation(ctx context.Context, discordID string) (idResult, error) {
	return withTelemetry(s, ctx, "EndParticipation", discordID, func(ctx context.Context) (idResult, error) {
		id, err := professionalsdomain.ParseDiscordID(discordID)
		if err != nil {
			return results.FailureResult[professionalsdomain.DiscordID, error](err), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (idResult, error) {
			if err := s.repo.DeleteParticipant(ctx, db, id); err != nil {
				return idResult{}, fmt.Errorf("failed to remove participant: %w", err)
			}
			return results.SuccessResult[professionalsdomain.DiscordID, error](id), nil
		})
	})
}

// CreateContract records a pledge. New participants must give both names;
// existing participants keep their stored names when none are given.
func (s *ProfessionalsService) CreateContract(ctx context.Context, req ContractRequest) (results.OperationResult[ContractCreated, error], error) {
	type contractResult = results.OperationResult[ContractCreated, error]

	return withTelemetry(s, ctx, "CreateContract", req.DiscordID, func(ctx context.Context) (contractResult, error) {
		var verrs professionalsdomain.ValidationErrors
		id, err := professionalsdomain.ParseDiscordID(req.DiscordID)
		if err != nil {
			verrs = append(verrs, asValidationErrors(err)...)
		}
		in := professionalsdomain.ContractInput{
			DiscordID: id,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Amount:    req.Amount,
		}
		verrs = append(verrs, professionalsdomain.ValidateContractInput(in, s.settings.ContractAmounts)...)
		if len(verrs) > 0 {
			return results.FailureResult[ContractCreated, error](verrs), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (contractResult, error) {
			existing, err := s.repo.GetParticipant(ctx, db, id)
			if err != nil {
				return contractResult{}, fmt.Errorf("failed to look up participant: %w", err)
			}

			participant := professionalsdomain.Participant{DiscordID: id, FirstName: in.FirstName, LastName: in.LastName}
			switch {
			case existing == nil:
				if in.FirstName == "" || in.LastName == "" {
					return results.FailureResult[ContractCreated, error](namesRequired()), nil
				}
			case existing.IsCoach:
				return results.FailureResult[ContractCreated, error](coachContract()), nil
			case in.FirstName == "":
				participant.FirstName = existing.FirstName
				participant.LastName = existing.LastName
			}

			contract := professionalsdomain.Contract{DiscordID: id, Amount: in.Amount}
			if err := s.repo.UpsertParticipant(ctx, db, professionalsdb.ParticipantFromDomain(participant)); err != nil {
				return contractResult{}, fmt.Errorf("failed to save participant: %w", err)
			}
			if err := s.repo.UpsertContract(ctx, db, professionalsdb.ContractFromDomain(contract)); err != nil {
				return contractResult{}, fmt.Errorf("failed to save contract: %w", err)
			}

			return results.SuccessResult[ContractCreated, error](ContractCreated{
				Participant: participant,
				Contract:    contract,
			}), nil
		})
	})
}

// EndContract withdraws the caller's contract.
func (s *ProfessionalsService) EndContract(ctx context.Context, discordID string) (idResult, error) {
	return withTelemetry(s, ctx, "EndContract", discordID, func(ctx context.Context) (idResult, error) {
		id, err := professionalsdomain.ParseDiscordID(discordID)
		if err != nil {
			return results.FailureResult[professionalsdomain.DiscordID, error](err), nil
		}
		if err := s.repo.DeleteContract(ctx, nil, id); err != nil {
			return idResult{}, fmt.Errorf("failed to remove contract: %w", err)
		}
		return results.SuccessResult[professionalsdomain.DiscordID, error](id), nil
	})
}

// GetParticipationStatus returns the caller's enrollment and contract.
func (s *ProfessionalsService) GetParticipationStatus(ctx context.Context, discordID string) (results.OperationResult[ParticipationStatus, error], error) {
	type statusResult = results.OperationResult[ParticipationStatus, error]

	return withTelemetry(s, ctx, "GetParticipationStatus", discordID, func(ctx context.Context) (statusResult, error) {
		id, err := professionalsdomain.ParseDiscordID(discordID)
		if err != nil {
			return results.FailureResult[ParticipationStatus, error](err), nil
		}

		var status ParticipationStatus
		participant, err := s.repo.GetParticipant(ctx, nil, id)
		if err != nil {
			return statusResult{}, fmt.Errorf("failed to get participant: %w", err)
		}
		if participant != nil {
			p := participant.ToDomain()
			status.Participant = &p
		}

		contract, err := s.repo.GetContract(ctx, nil, id)
		if err != nil {
			return statusResult{}, fmt.Errorf("failed to get contract: %w", err)
		}
		if contract != nil {
			c := contract.ToDomain()
			status.Contract = &c
		}

		return results.SuccessResult[ParticipationStatus, error](status), nil
	})
}
