package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

type rewardStore interface {
	All(ctx context.Context) (map[string]models.RewardFlags, error)
	Save(ctx context.Context, flags map[string]models.RewardFlags) error
}

// RewardListener receives the full reward map after every successful write.
type RewardListener func(flags map[string]models.RewardFlags)

// RewardService is the single owner of the shared reward-flag map. Every view
// reads and writes through it; writers are serialized so concurrent toggles
// from different tabs cannot overwrite each other's read-modify-write cycle,
// and subscribers are notified after each committed change.
type RewardService struct {
	store  rewardStore
	logger *zap.Logger

	mu        sync.Mutex
	listeners []RewardListener
}

// NewRewardService constructs RewardService.
func NewRewardService(store rewardStore, logger *zap.Logger) *RewardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RewardService{store: store, logger: logger}
}

// Subscribe registers a listener for committed reward changes. Listeners are
// invoked synchronously under the write lock, so they must be cheap.
func (s *RewardService) Subscribe(fn RewardListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// All returns the full persisted reward map.
func (s *RewardService) All(ctx context.Context) (map[string]models.RewardFlags, error) {
	return s.store.All(ctx)
}

// Get returns one student's flags; students without an entry have all flags
// off.
func (s *RewardService) Get(ctx context.Context, studentID string) (models.RewardFlags, error) {
	flags, err := s.store.All(ctx)
	if err != nil {
		return models.RewardFlags{}, err
	}
	return flags[studentID], nil
}

// Toggle flips one named flag for a student and persists the whole map. The
// read-modify-write cycle runs under the service lock.
func (s *RewardService) Toggle(ctx context.Context, studentID, flag string) (models.RewardFlags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags, err := s.store.All(ctx)
	if err != nil {
		return models.RewardFlags{}, err
	}

	entry := flags[studentID]
	switch flag {
	case models.RewardBadge:
		entry.Badge = !entry.Badge
	case models.RewardCertificate:
		entry.Certificate = !entry.Certificate
	case models.RewardComment:
		entry.Comment = !entry.Comment
	default:
		return models.RewardFlags{}, appErrors.Clone(appErrors.ErrValidation, "reward must be badge, certificate or comment")
	}
	flags[studentID] = entry

	if err := s.store.Save(ctx, flags); err != nil {
		return models.RewardFlags{}, err
	}

	s.logger.Info("reward toggled",
		zap.String("student_id", studentID),
		zap.String("flag", flag),
	)
	s.notifyLocked(flags)
	return entry, nil
}

// Set overwrites one student's flags wholesale and persists the map.
func (s *RewardService) Set(ctx context.Context, studentID string, entry models.RewardFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags, err := s.store.All(ctx)
	if err != nil {
		return err
	}
	flags[studentID] = entry
	if err := s.store.Save(ctx, flags); err != nil {
		return err
	}
	s.notifyLocked(flags)
	return nil
}

// FlaggedSets derives the per-flag id sets from one full read, the shape the
// rewards view renders.
func (s *RewardService) FlaggedSets(ctx context.Context) (models.RewardSets, error) {
	flags, err := s.store.All(ctx)
	if err != nil {
		return models.RewardSets{}, err
	}

	sets := models.RewardSets{
		Badge:       make(map[string]struct{}),
		Certificate: make(map[string]struct{}),
		Comment:     make(map[string]struct{}),
	}
	for id, entry := range flags {
		if entry.Badge {
			sets.Badge[id] = struct{}{}
		}
		if entry.Certificate {
			sets.Certificate[id] = struct{}{}
		}
		if entry.Comment {
			sets.Comment[id] = struct{}{}
		}
	}
	return sets, nil
}

func (s *RewardService) notifyLocked(flags map[string]models.RewardFlags) {
	for _, fn := range s.listeners {
		fn(flags)
	}
}
