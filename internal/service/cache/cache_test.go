package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type fakeSpeciesSource struct {
	calls   int
	species map[int]*pokeapi.Species
	err     error
}

func (f *fakeSpeciesSource) GetSpecies(_ context.Context, id int) (*pokeapi.Species, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.species[id], nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, int) (*pokeapi.Species, bool, error) {
	return nil, false, errors.New("store down")
}

func (brokenStore) Set(context.Context, int, *pokeapi.Species) error {
	return errors.New("store down")
}

func pikachuSpecies() *pokeapi.Species {
	return &pokeapi.Species{
		ID: 25,
		Names: []pokeapi.LocalizedName{
			{Name: "ピカチュウ", Language: pokeapi.NamedResource{Name: "ja"}},
		},
	}
}

func TestSpeciesCacheReadsThroughOnce(t *testing.T) {
	source := &fakeSpeciesSource{species: map[int]*pokeapi.Species{25: pikachuSpecies()}}
	cache := NewSpeciesCache(source, NewMemoryStore(time.Hour, zap.NewNop()), zap.NewNop())

	for i := 0; i < 3; i++ {
		sp, err := cache.GetSpecies(context.Background(), 25)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sp.Names[0].Name != "ピカチュウ" {
			t.Fatalf("unexpected species %+v", sp)
		}
	}

	if source.calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", source.calls)
	}
}

func TestSpeciesCacheDoesNotStoreFailures(t *testing.T) {
	source := &fakeSpeciesSource{err: errors.New("boom")}
	cache := NewSpeciesCache(source, NewMemoryStore(time.Hour, zap.NewNop()), zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := cache.GetSpecies(context.Background(), 25); err == nil {
			t.Fatalf("expected error to propagate")
		}
	}
	if source.calls != 2 {
		t.Fatalf("expected failures to be refetched, got %d calls", source.calls)
	}
}

func TestSpeciesCacheSurvivesBrokenStore(t *testing.T) {
	source := &fakeSpeciesSource{species: map[int]*pokeapi.Species{25: pikachuSpecies()}}
	cache := NewSpeciesCache(source, brokenStore{}, zap.NewNop())

	if _, err := cache.GetSpecies(context.Background(), 25); err != nil {
		t.Fatalf("expected store errors to be absorbed, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute, zap.NewNop())
	store.now = func() time.Time { return now }

	ctx := context.Background()
	_ = store.Set(ctx, 25, pikachuSpecies())
	_ = store.Set(ctx, 26, &pokeapi.Species{ID: 26})

	if _, found, _ := store.Get(ctx, 25); !found {
		t.Fatalf("expected fresh entry to be found")
	}

	now = now.Add(2 * time.Minute)
	if _, found, _ := store.Get(ctx, 25); found {
		t.Fatalf("expected expired entry to be a miss")
	}
	if removed := store.Purge(); removed != 1 {
		t.Fatalf("expected purge to remove the remaining expired entry, removed %d", removed)
	}
}

func TestNopStoreNeverHits(t *testing.T) {
	var store NopStore
	_ = store.Set(context.Background(), 25, pikachuSpecies())
	if _, found, _ := store.Get(context.Background(), 25); found {
		t.Fatalf("expected nop store to miss")
	}
}

func TestRedisStoreRoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStoreFromClient(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	if _, found, err := store.Get(ctx, 25); found || err != nil {
		t.Fatalf("expected clean miss, got found=%t err=%v", found, err)
	}

	if err := store.Set(ctx, 25, pikachuSpecies()); err != nil {
		t.Fatalf("expected set to succeed, got %v", err)
	}
	if !mr.Exists("pokedex:species:25") {
		t.Fatalf("expected species key to be written")
	}

	sp, found, err := store.Get(ctx, 25)
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%t err=%v", found, err)
	}
	if sp.Names[0].Name != "ピカチュウ" {
		t.Fatalf("unexpected species %+v", sp)
	}

	mr.FastForward(2 * time.Minute)
	if _, found, _ := store.Get(ctx, 25); found {
		t.Fatalf("expected entry to expire")
	}
}

func TestRedisStoreDropsCorruptEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if err := mr.Set("pokedex:species:25", "{broken"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := NewRedisStoreFromClient(client, time.Minute, zap.NewNop())
	_, found, err := store.Get(context.Background(), 25)
	if found || err == nil {
		t.Fatalf("expected corrupt entry to surface as cache error")
	}
	if mr.Exists("pokedex:species:25") {
		t.Fatalf("expected corrupt entry to be deleted")
	}
}
