package professionalshandlers

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
)

// ------------------------
// Fake Professionals Service
// ------------------------

// FakeProfessionalsService is a programmable stub for professionalsservice.Service.
type FakeProfessionalsService struct {
	trace []string

	ParticipateAsPlayerFunc    func(ctx context.Context, req professionalsservice.ParticipantRequest) (results.OperationResult[professionalsdomain.Participant, error], error)
	ParticipateAsCoachFunc     func(ctx context.Context, req professionalsservice.ParticipantRequest) (results.OperationResult[professionalsdomain.Participant, error], error)
	EndParticipationFunc       func(ctx context.Context, discordID string) (results.OperationResult[professionalsdomain.DiscordID, error], error)
	CreateContractFunc         func(ctx context.Context, req professionalsservice.ContractRequest) (results.OperationResult[professionalsservice.ContractCreated, error], error)
	EndContractFunc            func(ctx context.Context, discordID string) (results.OperationResult[professionalsdomain.DiscordID, error], error)
	GetParticipationStatusFunc func(ctx context.Context, discordID string) (results.OperationResult[professionalsservice.ParticipationStatus, error], error)
	StartNewCompetitionFunc    func(ctx context.Context) (results.OperationResult[professionalsservice.CompetitionStarted, error], error)
	RunAggregationFunc         func(ctx context.Context, scope professionalsdomain.Scope, payouts professionalsdomain.PayoutTable, notify professionalsservice.ProgressFunc) (*professionalsdomain.CompetitionResults, error)
}

func NewFakeProfessionalsService() *FakeProfessionalsService {
	return &FakeProfessionalsService{trace: []string{}}
}

func (f *FakeProfessionalsService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeProfessionalsService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeProfessionalsService) ParticipateAsPlayer(ctx context.Context, req professionalsservice.ParticipantRequest) (results.OperationResult[professionalsdomain.Participant, error], error) {
	f.record("ParticipateAsPlayer")
	if f.ParticipateAsPlayerFunc != nil {
		return f.ParticipateAsPlayerFunc(ctx, req)
	}
	return results.OperationResult[professionalsdomain.Participant, error]{}, nil
}

func (f *FakeProfessionalsService) ParticipateAsCoach(ctx context.Context, req professionalsservice.ParticipantRequest) (results.OperationResult[professionalsdomain.Participant, error], error) {
	f.record("ParticipateAsCoach")
	if f.ParticipateAsCoachFunc != nil {
		return f.ParticipateAsCoachFunc(ctx, req)
	}
	return results.OperationResult[professionalsdomain.Participant, error]{}, nil
}

func (f *FakeProfessionalsService) EndParticipation(ctx context.Context, discordID string) (results.OperationResult[professionalsdomain.DiscordID, error], error) {
	f.record("EndParticipation")
	if f.EndParticipationFunc != nil {
		return f.EndParticipationFunc(ctx, discordID)
	}
	return results.OperationResult[professionalsdomain.DiscordID, error]{}, nil
}

func (f *FakeProfessionalsService) CreateContract(ctx context.Context, req professionalsservice.ContractRequest) (results.OperationResult[professionalsservice.ContractCreated, error], error) {
	f.record("CreateContract")
	if f.CreateContractFunc != nil {
		return f.CreateContractFunc(ctx, req)
	}
	return results.OperationResult[professionalsservice.ContractCreated, error]{}, nil
}

func (f *FakeProfessionalsService) EndContract(ctx context.Context, discordID string) (results.OperationResult[professionalsdomain.DiscordID, error], error) {
	f.record("EndContract")
	if f.EndContractFunc != nil {
		return f.EndContractFunc(ctx, discordID)
	}
	return results.OperationResult[professionalsdomain.DiscordID, error]{}, nil
}

func (f *FakeProfessionalsService) GetParticipationStatus(ctx context.Context, discordID string) (results.OperationResult[professionalsservice.ParticipationStatus, error], error) {
	f.record("GetParticipationStatus")
	if f.GetParticipationStatusFunc != nil {
		return f.GetParticipationStatusFunc(ctx, discordID)
	}
	return results.OperationResult[professionalsservice.ParticipationStatus, error]{}, nil
}

func (f *FakeProfessionalsService) StartNewCompetition(ctx context.Context) (results.OperationResult[professionalsservice.CompetitionStarted, error], error) {
	f.record("StartNewCompetition")
	if f.StartNewCompetitionFunc != nil {
		return f.StartNewCompetitionFunc(ctx)
	}
	return results.OperationResult[professionalsservice.CompetitionStarted, error]{}, nil
}

func (f *FakeProfessionalsService) RunAggregation(ctx context.Context, scope professionalsdomain.Scope, payouts professionalsdomain.PayoutTable, notify professionalsservice.ProgressFunc) (*professionalsdomain.CompetitionResults, error) {
	f.record("RunAggregation")
	if f.RunAggregationFunc != nil {
		return f.RunAggregationFunc(ctx, scope, payouts, notify)
	}
	return &professionalsdomain.CompetitionResults{}, nil
}

var _ professionalsservice.Service = (*FakeProfessionalsService)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type fakePublisher struct {
	mu   sync.Mutex
	sent map[string][]*message.Message
	err  error
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{sent: map[string][]*message.Message{}}
}

func (p *fakePublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent[topic] = append(p.sent[topic], msgs...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[topic]
}
