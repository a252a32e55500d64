package registry

//go:generate mockgen -source=registry.go -destination=mocks/mocks.go -package=mocks GuestProvider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"wedding-planner/internal/models"
	"wedding-planner/internal/registry/mocks"
	"wedding-planner/internal/storage"
	storagemocks "wedding-planner/internal/storage/mocks"
)

type RegistrySuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *mocks.MockGuestProvider
	store    *storage.MemoryStore
	syncer   *Syncer
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

var fixedNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockGuestProvider(s.ctrl)
	s.store = storage.NewMemoryStore()
	s.syncer = NewSyncer(s.store, SyncerConfig{})
	s.registry = s.newRegistry()
}

func (s *RegistrySuite) TearDownTest() {
	s.Require().NoError(s.syncer.Close(s.ctx))
	s.ctrl.Finish()
}

func (s *RegistrySuite) newRegistry() *Registry {
	r, err := New(s.store,
		WithProvider(s.provider),
		WithSyncHook(s.syncer.Submit),
		WithClock(func() time.Time { return fixedNow }),
	)
	s.Require().NoError(err)
	s.Require().NoError(r.Initialize(s.ctx))
	return r
}

// saved returns what is currently persisted under the default key
func (s *RegistrySuite) saved() []models.Guest {
	s.Require().NoError(s.syncer.Flush(s.ctx))
	raw, ok, err := s.store.Get(s.ctx, DefaultKey)
	s.Require().NoError(err)
	s.Require().True(ok, "nothing persisted")
	guests, skipped, err := DecodeGuests(raw)
	s.Require().NoError(err)
	s.Require().Zero(skipped)
	return guests
}

func (s *RegistrySuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "store is required")
	})

	s.Run("empty key returns error", func() {
		_, err := New(s.store, WithKey(""))
		s.Error(err)
	})
}

func (s *RegistrySuite) TestAddManual() {
	s.Run("appends a guest with defaults", func() {
		g, err := s.registry.AddManual("  Alice  ", "")
		s.Require().NoError(err)

		s.NotEmpty(g.ID)
		s.Equal("Alice", g.Name)
		s.Equal(models.RSVPMaybe, g.RSVP)
		s.Equal("6/15/2026", g.AddedDate)
		s.False(g.IsRandom)
		s.Equal([]models.Guest{g}, s.registry.List())
	})

	s.Run("keeps the given rsvp", func() {
		g, err := s.registry.AddManual("Bob", models.RSVPYes)
		s.Require().NoError(err)
		s.Equal(models.RSVPYes, g.RSVP)
		s.Equal(2, s.registry.Len())
	})

	s.Run("persists the new list", func() {
		s.Equal(s.registry.List(), s.saved())
	})
}

func (s *RegistrySuite) TestAddManualValidation() {
	_, err := s.registry.AddManual("Alice", "")
	s.Require().NoError(err)
	before := s.registry.List()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.registry.AddManual(name, models.RSVPYes)
		s.Require().Error(err)
		s.ErrorIs(err, models.ErrValidation)
	}

	_, err = s.registry.AddManual("Carl", models.RSVPStatus("Perhaps"))
	s.ErrorIs(err, models.ErrValidation)

	s.Equal(before, s.registry.List())
}

func (s *RegistrySuite) TestIDsAreUniqueAndIncreasing() {
	var ids []string
	for i := 0; i < 500; i++ {
		g, err := s.registry.AddManual("Guest", "")
		s.Require().NoError(err)
		ids = append(ids, g.ID)
	}

	s.True(sort.StringsAreSorted(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		s.False(seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func (s *RegistrySuite) TestAddRandom() {
	s.Run("adds the provider's guest", func() {
		s.provider.EXPECT().RandomName(gomock.Any()).Return("Jane Doe", nil)

		g, err := s.registry.AddRandom(s.ctx)
		s.Require().NoError(err)
		s.Equal("Jane Doe", g.Name)
		s.Equal(models.RSVPMaybe, g.RSVP)
		s.True(g.IsRandom)
		s.Equal([]models.Guest{g}, s.registry.List())
		s.Equal(s.registry.List(), s.saved())
	})

	s.Run("provider failure leaves the list alone", func() {
		before := s.registry.List()
		s.provider.EXPECT().RandomName(gomock.Any()).Return("", errors.New("network down"))

		_, err := s.registry.AddRandom(s.ctx)
		s.Require().Error(err)
		s.ErrorIs(err, models.ErrProvider)
		s.Equal(before, s.registry.List())
	})

	s.Run("provider error is passed through", func() {
		perr := &models.ProviderError{Op: "decode", Err: errors.New("no results")}
		s.provider.EXPECT().RandomName(gomock.Any()).Return("", perr)

		_, err := s.registry.AddRandom(s.ctx)
		s.Same(perr, err)
	})

	s.Run("blank name is a provider error", func() {
		s.provider.EXPECT().RandomName(gomock.Any()).Return("  ", nil)

		_, err := s.registry.AddRandom(s.ctx)
		s.ErrorIs(err, models.ErrProvider)
	})
}

func (s *RegistrySuite) TestAddRandomWithoutProvider() {
	r, err := New(s.store)
	s.Require().NoError(err)

	_, err = r.AddRandom(s.ctx)
	s.ErrorIs(err, models.ErrProvider)
	s.Zero(r.Len())
}

func (s *RegistrySuite) TestAddRandomDiscardsStaleResults() {
	s.Run("caller cancelled while pending", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		s.provider.EXPECT().RandomName(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
			cancel()
			return "Late Guest", nil
		})

		_, err := s.registry.AddRandom(ctx)
		s.ErrorIs(err, ErrStaleResult)
		s.Zero(s.registry.Len())
	})

	s.Run("list cleared while pending", func() {
		_, err := s.registry.AddManual("Alice", "")
		s.Require().NoError(err)

		s.provider.EXPECT().RandomName(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
			s.registry.Clear()
			return "Late Guest", nil
		})

		_, err = s.registry.AddRandom(s.ctx)
		s.ErrorIs(err, ErrStaleResult)
		s.Empty(s.registry.List())
	})

	s.Run("list reloaded while pending", func() {
		s.provider.EXPECT().RandomName(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
			s.Require().NoError(s.registry.Initialize(ctx))
			return "Late Guest", nil
		})

		_, err := s.registry.AddRandom(s.ctx)
		s.ErrorIs(err, ErrStaleResult)
	})
}

func (s *RegistrySuite) TestManualAddWhileRandomPending() {
	release := make(chan struct{})
	s.provider.EXPECT().RandomName(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		<-release
		return "Jane Doe", nil
	})

	var (
		wg        sync.WaitGroup
		randomErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, randomErr = s.registry.AddRandom(s.ctx)
	}()

	_, err := s.registry.AddManual("Alice", models.RSVPYes)
	s.Require().NoError(err)
	close(release)
	wg.Wait()
	s.Require().NoError(randomErr)

	list := s.registry.List()
	s.Require().Len(list, 2)
	s.Equal("Alice", list[0].Name)
	s.Equal("Jane Doe", list[1].Name)
	s.Equal(list, s.saved())
}

func (s *RegistrySuite) TestUpdateRSVP() {
	alice, _ := s.registry.AddManual("Alice", models.RSVPYes)
	bob, _ := s.registry.AddManual("Bob", models.RSVPMaybe)
	cara, _ := s.registry.AddManual("Cara", models.RSVPMaybe)
	before := s.registry.List()

	s.Require().NoError(s.registry.UpdateRSVP(bob.ID, models.RSVPNo))

	after := s.registry.List()
	s.Require().Len(after, 3)
	s.Equal(before[0], after[0])
	s.Equal(before[2], after[2])

	want := bob
	want.RSVP = models.RSVPNo
	s.Equal(want, after[1])
	s.Equal(after, s.saved())

	s.Run("unknown id", func() {
		err := s.registry.UpdateRSVP("missing", models.RSVPNo)
		s.ErrorIs(err, models.ErrNotFound)
		s.Equal(after, s.registry.List())
	})

	s.Run("invalid status", func() {
		err := s.registry.UpdateRSVP(alice.ID, models.RSVPStatus(""))
		s.ErrorIs(err, models.ErrValidation)
	})

	s.Run("same status is a no-op", func() {
		s.Require().NoError(s.registry.UpdateRSVP(cara.ID, models.RSVPMaybe))
		s.Equal(after, s.registry.List())
	})
}

func (s *RegistrySuite) TestRemove() {
	alice, _ := s.registry.AddManual("Alice", "")
	bob, _ := s.registry.AddManual("Bob", "")

	s.True(s.registry.Remove(alice.ID))
	s.False(s.registry.Remove(alice.ID))
	s.False(s.registry.Remove("never-existed"))

	s.Equal([]models.Guest{bob}, s.registry.List())
	s.Equal([]models.Guest{bob}, s.saved())

	_, err := s.registry.Get(alice.ID)
	s.ErrorIs(err, models.ErrNotFound)
	got, err := s.registry.Get(bob.ID)
	s.Require().NoError(err)
	s.Equal(bob, got)
}

func (s *RegistrySuite) TestListIsACopy() {
	_, _ = s.registry.AddManual("Alice", "")

	list := s.registry.List()
	list[0].Name = "Mallory"

	s.Equal("Alice", s.registry.List()[0].Name)
}

func (s *RegistrySuite) TestRoundTrip() {
	_, _ = s.registry.AddManual("Alice", models.RSVPYes)
	_, _ = s.registry.AddManual("Bob", models.RSVPNo)
	s.provider.EXPECT().RandomName(gomock.Any()).Return("Jane Doe", nil)
	_, err := s.registry.AddRandom(s.ctx)
	s.Require().NoError(err)
	want := s.registry.List()
	s.Require().NoError(s.syncer.Flush(s.ctx))

	reloaded := s.newRegistry()
	s.Equal(want, reloaded.List())

	// ids keep increasing after a reload
	g, err := reloaded.AddManual("Dan", "")
	s.Require().NoError(err)
	s.Greater(g.ID, want[len(want)-1].ID)
}

func (s *RegistrySuite) TestInitialize() {
	// no sync hook, so background writes cannot race the snapshots set here
	r, err := New(s.store)
	s.Require().NoError(err)

	s.Run("loads snapshots from the original app", func() {
		raw := `[{"id":"1718049382123","name":"Alice","rsvp":"Yes","addedDate":"6/10/2024"},` +
			`{"id":"1718049399999","name":"Jane Doe","rsvp":"Maybe","addedDate":"6/10/2024","isRandom":true}]`
		s.Require().NoError(s.store.Set(s.ctx, DefaultKey, raw))

		s.Require().NoError(r.Initialize(s.ctx))
		s.Equal([]models.Guest{
			{ID: "1718049382123", Name: "Alice", RSVP: models.RSVPYes, AddedDate: "6/10/2024"},
			{ID: "1718049399999", Name: "Jane Doe", RSVP: models.RSVPMaybe, AddedDate: "6/10/2024", IsRandom: true},
		}, r.List())

		g, err := r.AddManual("Bob", "")
		s.Require().NoError(err)
		s.NotEqual("1718049382123", g.ID)
	})

	s.Run("corrupt snapshot starts empty with a fault", func() {
		s.Require().NoError(s.store.Set(s.ctx, DefaultKey, "{broken"))

		err := r.Initialize(s.ctx)
		s.Require().Error(err)
		s.ErrorIs(err, models.ErrPersistence)
		s.Empty(r.List())

		_, err = r.AddManual("Alice", "")
		s.NoError(err, "registry stays usable")
	})

	s.Run("normalises bad records", func() {
		raw := `[{"id":"a","name":"Alice","rsvp":"yes"},{"id":"","name":"Nobody"},` +
			`{"id":"b","name":"  "},{"id":"a","name":"Dup"},{"id":"c","name":"Cara","rsvp":"Perhaps"}]`
		s.Require().NoError(s.store.Set(s.ctx, DefaultKey, raw))

		s.Require().NoError(r.Initialize(s.ctx))
		s.Equal([]models.Guest{
			{ID: "a", Name: "Alice", RSVP: models.RSVPYes},
			{ID: "c", Name: "Cara", RSVP: models.RSVPMaybe},
		}, r.List())
	})

	s.Run("null snapshot is empty", func() {
		s.Require().NoError(s.store.Set(s.ctx, DefaultKey, "null"))
		s.Require().NoError(r.Initialize(s.ctx))
		s.Empty(r.List())
	})
}

func (s *RegistrySuite) TestInitializeStoreFailure() {
	store := storagemocks.NewMockStore(s.ctrl)
	store.EXPECT().Get(gomock.Any(), DefaultKey).Return("", false, errors.New("disk on fire"))

	r, err := New(store)
	s.Require().NoError(err)

	err = r.Initialize(s.ctx)
	s.ErrorIs(err, models.ErrPersistence)
	s.Empty(r.List())
}

func (s *RegistrySuite) TestInitializeCorruptFile() {
	path := filepath.Join(s.T().TempDir(), "guests.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{"@wedding_guests": "[{\"id\":\"1\"`), 0644))

	store, err := storage.NewFileStore(path)
	s.Require().NoError(err)
	syncer := NewSyncer(store, SyncerConfig{Key: DefaultKey})
	defer syncer.Close(s.ctx)

	r, err := New(store, WithSyncHook(syncer.Submit))
	s.Require().NoError(err)

	err = r.Initialize(s.ctx)
	var fault *models.PersistenceFault
	s.Require().ErrorAs(err, &fault)
	s.Equal("load", fault.Op)
	s.Empty(r.List())

	g, err := r.AddManual("Alice", models.RSVPYes)
	s.Require().NoError(err)
	s.Require().NoError(syncer.Flush(s.ctx))

	raw, ok, err := store.Get(s.ctx, DefaultKey)
	s.Require().NoError(err)
	s.Require().True(ok)
	saved, _, err := DecodeGuests(raw)
	s.Require().NoError(err)
	s.Equal([]models.Guest{g}, saved)
}

func (s *RegistrySuite) TestAddRandomFailsAfterCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.provider.EXPECT().RandomName(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
		cancel()
		return "", &models.ProviderError{Op: "fetch", Err: ctx.Err()}
	})

	_, err := s.registry.AddRandom(ctx)
	s.ErrorIs(err, ErrStaleResult)
	s.NotErrorIs(err, models.ErrProvider)
	s.Empty(s.registry.List())
}

func (s *RegistrySuite) TestSyncHookSeesEveryMutation() {
	var snapshots [][]models.Guest
	r, err := New(s.store, WithSyncHook(func(snapshot []models.Guest) {
		snapshots = append(snapshots, snapshot)
	}))
	s.Require().NoError(err)

	alice, _ := r.AddManual("Alice", "")
	_ = r.UpdateRSVP(alice.ID, models.RSVPYes)
	_ = r.UpdateRSVP(alice.ID, models.RSVPYes)
	_, _ = r.AddManual(" ", "")
	r.Remove(alice.ID)
	r.Remove(alice.ID)
	r.Clear()

	s.Require().Len(snapshots, 4)
	s.Len(snapshots[0], 1)
	s.Equal(models.RSVPMaybe, snapshots[0][0].RSVP, "earlier snapshots are never modified")
	s.Equal(models.RSVPYes, snapshots[1][0].RSVP)
	s.Empty(snapshots[2])
	s.Empty(snapshots[3])
}
