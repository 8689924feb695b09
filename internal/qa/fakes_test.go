package qa_test

import (
	"context"
	"slices"
	"sync"

	"github.com/RSA-Bots/Reppy/internal/database/types"
	"github.com/RSA-Bots/Reppy/internal/qa"
)

// fakeGuildStore is an in-memory qa.GuildStore.
type fakeGuildStore struct {
	mu      sync.Mutex
	configs map[uint64]*types.GuildConfig
}

func newFakeGuildStore() *fakeGuildStore {
	return &fakeGuildStore{configs: make(map[uint64]*types.GuildConfig)}
}

func (s *fakeGuildStore) seed(config *types.GuildConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[config.GuildID] = config
}

func (s *fakeGuildStore) GetGuild(_ context.Context, guildID uint64) (*types.GuildConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, ok := s.configs[guildID]
	if !ok {
		return nil, qa.ErrConfigMissing
	}

	clone := *config
	clone.ValidChannels = slices.Clone(config.ValidChannels)

	return &clone, nil
}

func (s *fakeGuildStore) CreateDefault(_ context.Context, guildID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[guildID]; !ok {
		s.configs[guildID] = &types.GuildConfig{GuildID: guildID, ValidChannels: []uint64{}}
	}

	return nil
}

func (s *fakeGuildStore) SaveValidChannels(_ context.Context, guildID uint64, channels []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, ok := s.configs[guildID]
	if !ok {
		return qa.ErrConfigMissing
	}

	config.ValidChannels = slices.Clone(channels)

	return nil
}

func (s *fakeGuildStore) SetReportChannel(_ context.Context, guildID, channelID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, ok := s.configs[guildID]
	if !ok {
		return qa.ErrConfigMissing
	}

	config.ReportChannelID = channelID

	return nil
}

// fakeMessageStore is an in-memory qa.MessageStore. CastVote holds the store
// mutex for the whole mutation, matching the atomicity the real store gets
// from a single statement.
type fakeMessageStore struct {
	mu      sync.Mutex
	records map[uint64]*types.MessageRecord
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{records: make(map[uint64]*types.MessageRecord)}
}

func (s *fakeMessageStore) GetRecord(_ context.Context, _, messageID uint64) (*types.MessageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[messageID]
	if !ok {
		return nil, qa.ErrRecordMissing
	}

	clone := cloneRecord(record)

	return &clone, nil
}

func (s *fakeMessageStore) InsertRecord(_ context.Context, record *types.MessageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.MessageID]; ok {
		return nil
	}

	clone := cloneRecord(record)
	s.records[record.MessageID] = &clone

	return nil
}

func (s *fakeMessageStore) CastVote(
	_ context.Context, guildID, messageID, voterID uint64, direction qa.VoteDirection,
) (*types.MessageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[messageID]
	if !ok || record.GuildID != guildID {
		return nil, qa.ErrRecordMissing
	}

	target, opposite := &record.Upvoters, &record.Downvoters
	if direction == qa.VoteDown {
		target, opposite = &record.Downvoters, &record.Upvoters
	}

	if !slices.Contains(*target, voterID) {
		*target = append(*target, voterID)
	}

	if i := slices.Index(*opposite, voterID); i >= 0 {
		*opposite = slices.Delete(*opposite, i, i+1)
	}

	clone := cloneRecord(record)

	return &clone, nil
}

func (s *fakeMessageStore) ChannelScore(_ context.Context, guildID, userID, channelID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var score int64

	for _, record := range s.records {
		if record.GuildID == guildID && record.PosterID == userID && record.ChannelID == channelID {
			score += int64(len(record.Upvoters)) - int64(len(record.Downvoters))
		}
	}

	return score, nil
}

func cloneRecord(record *types.MessageRecord) types.MessageRecord {
	clone := *record
	clone.Upvoters = slices.Clone(record.Upvoters)
	clone.Downvoters = slices.Clone(record.Downvoters)

	return clone
}

// fakeReputationStore is an in-memory qa.ReputationStore.
type fakeReputationStore struct {
	mu     sync.Mutex
	scores map[[3]uint64]int64
}

func newFakeReputationStore() *fakeReputationStore {
	return &fakeReputationStore{scores: make(map[[3]uint64]int64)}
}

func (s *fakeReputationStore) UpsertScore(_ context.Context, rep *types.UserReputation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[[3]uint64{rep.GuildID, rep.UserID, rep.ChannelID}] = rep.Reputation

	return nil
}

func (s *fakeReputationStore) GetScore(_ context.Context, guildID, userID, channelID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scores[[3]uint64{guildID, userID, channelID}], nil
}

// fakeLocker serializes per guild with plain mutexes.
type fakeLocker struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[uint64]*sync.Mutex)}
}

func (l *fakeLocker) Acquire(_ context.Context, guildID uint64) (func(), error) {
	l.mu.Lock()

	lock, ok := l.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[guildID] = lock
	}
	l.mu.Unlock()

	lock.Lock()

	return lock.Unlock, nil
}

// fakeGateway records every platform call so tests can assert on side effects.
type fakeGateway struct {
	mu sync.Mutex

	// threads maps channel IDs to the thread they resolve to.
	threads map[uint64]qa.Thread
	names   map[uint64]string
	nextID  uint64

	createdThreads []string
	posted         []qa.AnswerPost
	deleted        []uint64
	footers        map[uint64]qa.VoteCounts

	postErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		threads: make(map[uint64]qa.Thread),
		names:   make(map[uint64]string),
		footers: make(map[uint64]qa.VoteCounts),
		nextID:  9000,
	}
}

func (g *fakeGateway) CreateThread(_ context.Context, _, messageID uint64, name string) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createdThreads = append(g.createdThreads, name)

	return messageID, nil
}

func (g *fakeGateway) ThreadOf(_ context.Context, channelID uint64) (qa.Thread, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[channelID]

	return thread, ok, nil
}

func (g *fakeGateway) PostAnswer(_ context.Context, post qa.AnswerPost) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.postErr != nil {
		return 0, g.postErr
	}

	g.posted = append(g.posted, post)
	g.nextID++

	return g.nextID, nil
}

func (g *fakeGateway) DeleteMessage(_ context.Context, _, messageID uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, messageID)

	return nil
}

func (g *fakeGateway) MemberDisplayName(_ context.Context, _, userID uint64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if name, ok := g.names[userID]; ok {
		return name, nil
	}

	return "member", nil
}

func (g *fakeGateway) UpdateAnswerFooter(_ context.Context, _, messageID uint64, upvotes, downvotes int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.footers[messageID] = qa.VoteCounts{Upvotes: upvotes, Downvotes: downvotes}

	return nil
}
