package cache

import (
	"context"

	"github.com/thedyrex/pickems/internal/domain/leaderboard"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	"github.com/thedyrex/pickems/internal/domain/team"
	"github.com/thedyrex/pickems/internal/domain/user"
	basecache "github.com/thedyrex/pickems/internal/platform/cache"
)

const (
	keyLeaderboard = "leaderboard"
	keyTeamList    = "team:list"
	prefixTeam     = "team:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, keyTeamList, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, prefixTeam+"id:"+teamID, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) UpdateLogo(ctx context.Context, teamID, logo string) error {
	if err := r.next.UpdateLogo(ctx, teamID, logo); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, prefixTeam)
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// LeaderboardRepository caches the full standings. Writers that change scores
// or names drop the entry through ScoreRepository and UserRepository below.
type LeaderboardRepository struct {
	next  leaderboard.Repository
	cache *basecache.Store
}

func NewLeaderboardRepository(next leaderboard.Repository, cache *basecache.Store) *LeaderboardRepository {
	return &LeaderboardRepository{next: next, cache: cache}
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]leaderboard.Entry, error) {
	items, err := basecache.Load(ctx, r.cache, keyLeaderboard, func(ctx context.Context) ([]leaderboard.Entry, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]leaderboard.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]leaderboard.Entry(nil), items...), nil
}

// ScoreRepository passes every call through and invalidates the leaderboard on writes.
// A leaderboard load already running during the write is not cached.
type ScoreRepository struct {
	scoring.Repository
	cache *basecache.Store
}

func NewScoreRepository(next scoring.Repository, cache *basecache.Store) *ScoreRepository {
	return &ScoreRepository{Repository: next, cache: cache}
}

func (r *ScoreRepository) UpsertMany(ctx context.Context, items []scoring.Score) error {
	defer r.cache.Delete(ctx, keyLeaderboard)
	return r.Repository.UpsertMany(ctx, items)
}

func (r *ScoreRepository) DeleteByMatchIDs(ctx context.Context, matchIDs []string) error {
	defer r.cache.Delete(ctx, keyLeaderboard)
	return r.Repository.DeleteByMatchIDs(ctx, matchIDs)
}

func (r *ScoreRepository) DeleteAll(ctx context.Context) error {
	defer r.cache.Delete(ctx, keyLeaderboard)
	return r.Repository.DeleteAll(ctx)
}

type UserRepository struct {
	user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{Repository: next, cache: cache}
}

func (r *UserRepository) Upsert(ctx context.Context, item user.Profile) error {
	defer r.cache.Delete(ctx, keyLeaderboard)
	return r.Repository.Upsert(ctx, item)
}
