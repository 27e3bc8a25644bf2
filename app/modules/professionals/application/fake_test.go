package professionalsservice

import (
	"context"
	"sync"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	professionalsdb "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Professionals Repo
// ------------------------

// FakeRepo keeps rows in memory unless a Func override is set.
type FakeRepo struct {
	mu    sync.Mutex
	trace []string

	participants map[professionalsdomain.DiscordID]*professionalsdb.Participant
	contracts    map[professionalsdomain.DiscordID]*professionalsdb.Contract
	order        []professionalsdomain.DiscordID

	GetParticipantFunc     func(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*professionalsdb.Participant, error)
	GetAllParticipantsFunc func(ctx context.Context, db bun.IDB) ([]*professionalsdb.Participant, error)
	UpsertParticipantFunc  func(ctx context.Context, db bun.IDB, p *professionalsdb.Participant) error
	DeleteParticipantFunc  func(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error
	GetAllContractsFunc    func(ctx context.Context, db bun.IDB) ([]*professionalsdb.Contract, error)
	UpsertContractFunc     func(ctx context.Context, db bun.IDB, c *professionalsdb.Contract) error
	DeleteContractFunc     func(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error
	DeleteAllContractsFunc func(ctx context.Context, db bun.IDB) error
}

func NewFakeRepo() *FakeRepo {
	return &FakeRepo{
		trace:        []string{},
		participants: make(map[professionalsdomain.DiscordID]*professionalsdb.Participant),
		contracts:    make(map[professionalsdomain.DiscordID]*professionalsdb.Contract),
	}
}

func (f *FakeRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- seeding helpers ---

func (f *FakeRepo) seedParticipant(p professionalsdomain.Participant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.participants[p.DiscordID]; !ok {
		f.order = append(f.order, p.DiscordID)
	}
	f.participants[p.DiscordID] = professionalsdb.ParticipantFromDomain(p)
}

func (f *FakeRepo) seedContract(c professionalsdomain.Contract) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contracts[c.DiscordID] = professionalsdb.ContractFromDomain(c)
}

func (f *FakeRepo) participant(id professionalsdomain.DiscordID) *professionalsdb.Participant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.participants[id]
}

func (f *FakeRepo) contract(id professionalsdomain.DiscordID) *professionalsdb.Contract {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contracts[id]
}

// --- Repository Interface Implementation ---

func (f *FakeRepo) InsertParticipant(ctx context.Context, db bun.IDB, p *professionalsdb.Participant) error {
	f.record("InsertParticipant")
	if f.participant(p.DiscordID) != nil {
		return professionalsdb.ErrDuplicateParticipant
	}
	f.seedParticipant(p.ToDomain())
	return nil
}

func (f *FakeRepo) UpsertParticipant(ctx context.Context, db bun.IDB, p *professionalsdb.Participant) error {
	f.record("UpsertParticipant")
	if f.UpsertParticipantFunc != nil {
		return f.UpsertParticipantFunc(ctx, db, p)
	}
	f.seedParticipant(p.ToDomain())
	return nil
}

func (f *FakeRepo) GetParticipant(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*professionalsdb.Participant, error) {
	f.record("GetParticipant")
	if f.GetParticipantFunc != nil {
		return f.GetParticipantFunc(ctx, db, id)
	}
	return f.participant(id), nil
}

func (f *FakeRepo) GetAllParticipants(ctx context.Context, db bun.IDB) ([]*professionalsdb.Participant, error) {
	f.record("GetAllParticipants")
	if f.GetAllParticipantsFunc != nil {
		return f.GetAllParticipantsFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*professionalsdb.Participant, 0, len(f.participants))
	for _, id := range f.order {
		if p, ok := f.participants[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *FakeRepo) DeleteParticipant(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error {
	f.record("DeleteParticipant")
	if f.DeleteParticipantFunc != nil {
		return f.DeleteParticipantFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.participants, id)
	delete(f.contracts, id)
	return nil
}

func (f *FakeRepo) DeleteAllParticipants(ctx context.Context, db bun.IDB) error {
	f.record("DeleteAllParticipants")
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.participants)
	f.order = nil
	return nil
}

func (f *FakeRepo) InsertContract(ctx context.Context, db bun.IDB, c *professionalsdb.Contract) error {
	f.record("InsertContract")
	if f.contract(c.DiscordID) != nil {
		return professionalsdb.ErrDuplicateContract
	}
	f.seedContract(c.ToDomain())
	return nil
}

func (f *FakeRepo) UpsertContract(ctx context.Context, db bun.IDB, c *professionalsdb.Contract) error {
	f.record("UpsertContract")
	if f.UpsertContractFunc != nil {
		return f.UpsertContractFunc(ctx, db, c)
	}
	f.seedContract(c.ToDomain())
	return nil
}

func (f *FakeRepo) GetContract(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) (*professionalsdb.Contract, error) {
	f.record("GetContract")
	return f.contract(id), nil
}

func (f *FakeRepo) GetAllContracts(ctx context.Context, db bun.IDB) ([]*professionalsdb.Contract, error) {
	f.record("GetAllContracts")
	if f.GetAllContractsFunc != nil {
		return f.GetAllContractsFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*professionalsdb.Contract, 0, len(f.contracts))
	for _, c := range f.contracts {
		out = append(out, c)
	}
	return out, nil
}

func (f *FakeRepo) DeleteContract(ctx context.Context, db bun.IDB, id professionalsdomain.DiscordID) error {
	f.record("DeleteContract")
	if f.DeleteContractFunc != nil {
		return f.DeleteContractFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contracts, id)
	return nil
}

func (f *FakeRepo) DeleteAllContracts(ctx context.Context, db bun.IDB) error {
	f.record("DeleteAllContracts")
	if f.DeleteAllContractsFunc != nil {
		return f.DeleteAllContractsFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.contracts)
	return nil
}

// --- Accessors for assertions ---

func (f *FakeRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ professionalsdb.Repository = (*FakeRepo)(nil)

// ------------------------
// Fake Ranking Source
// ------------------------

type FakeSource struct {
	trace []string

	FetchMembershipFunc     func(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.MembershipRecord, error)
	FetchLeaderboardFunc    func(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.LeaderboardRecord, error)
	FreeCompanyRankingsFunc func(ctx context.Context, dataCenter string) ([]professionalsdomain.FreeCompanyRanking, error)
}

func NewFakeSource() *FakeSource {
	return &FakeSource{trace: []string{}}
}

func (f *FakeSource) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSource) FetchMembership(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.MembershipRecord, error) {
	f.record("FetchMembership")
	if f.FetchMembershipFunc != nil {
		return f.FetchMembershipFunc(ctx, scope)
	}
	return nil, nil
}

func (f *FakeSource) FetchLeaderboard(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.LeaderboardRecord, error) {
	f.record("FetchLeaderboard")
	if f.FetchLeaderboardFunc != nil {
		return f.FetchLeaderboardFunc(ctx, scope)
	}
	return nil, nil
}

func (f *FakeSource) FreeCompanyRankings(ctx context.Context, dataCenter string) ([]professionalsdomain.FreeCompanyRanking, error) {
	f.record("FreeCompanyRankings")
	if f.FreeCompanyRankingsFunc != nil {
		return f.FreeCompanyRankingsFunc(ctx, dataCenter)
	}
	return nil, nil
}

func (f *FakeSource) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ RankingSource = (*FakeSource)(nil)
