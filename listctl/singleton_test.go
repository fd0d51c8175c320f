package listctl_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
)

type document struct {
	Name string
}

type fakeDocumentBackend struct {
	lock      sync.Mutex
	value     document
	fetchErr  error
	updateErr error
	fetches   int
}

func (b *fakeDocumentBackend) endpoints() listctl.SingletonEndpoints[document] {
	return listctl.SingletonEndpoints[document]{
		Fetch: func(ctx context.Context) (document, error) {
			b.lock.Lock()
			defer b.lock.Unlock()
			b.fetches++
			if b.fetchErr != nil {
				return document{}, b.fetchErr
			}
			return b.value, nil
		},
		Update: func(ctx context.Context, payload any) error {
			b.lock.Lock()
			defer b.lock.Unlock()
			if b.updateErr != nil {
				return b.updateErr
			}
			b.value = payload.(document)
			return nil
		},
	}
}

func TestSingletonReload(t *testing.T) {
	backend := &fakeDocumentBackend{value: document{Name: "Cafe Aroha"}}
	controller, err := listctl.NewSingleton(backend.endpoints(), fakeGate{authenticated: true}, notify.NewChannel())
	require.NoError(t, err)

	require.NoError(t, controller.Reload(context.Background()))

	value, loaded := controller.Value()
	require.True(t, loaded)
	require.Equal(t, "Cafe Aroha", value.Name)
}

func TestSingletonUpdateRefetches(t *testing.T) {
	backend := &fakeDocumentBackend{value: document{Name: "Old Name"}}
	notices := notify.NewChannel()
	controller, err := listctl.NewSingleton(backend.endpoints(), fakeGate{authenticated: true}, notices,
		listctl.WithSingletonNoun[document]("Business profile"))
	require.NoError(t, err)
	require.NoError(t, controller.Reload(context.Background()))

	require.NoError(t, controller.Update(context.Background(), document{Name: "New Name"}))

	value, _ := controller.Value()
	require.Equal(t, "New Name", value.Name) // refetched, not patched
	require.Equal(t, notify.Success, notices.Current().Kind)
	require.Contains(t, notices.Current().Text, "Business profile updated")

	backend.lock.Lock()
	require.Equal(t, 2, backend.fetches)
	backend.lock.Unlock()
}

func TestSingletonFetchFailureKeepsValue(t *testing.T) {
	backend := &fakeDocumentBackend{value: document{Name: "Cafe Aroha"}}
	notices := notify.NewChannel()
	controller, err := listctl.NewSingleton(backend.endpoints(), fakeGate{authenticated: true}, notices)
	require.NoError(t, err)
	require.NoError(t, controller.Reload(context.Background()))

	backend.lock.Lock()
	backend.fetchErr = errors.New("boom")
	backend.lock.Unlock()

	require.Error(t, controller.Reload(context.Background()))

	value, loaded := controller.Value()
	require.True(t, loaded)
	require.Equal(t, "Cafe Aroha", value.Name)
	require.Equal(t, notify.Error, notices.Current().Kind)
}

func TestSingletonRequiresAuthentication(t *testing.T) {
	backend := &fakeDocumentBackend{}
	controller, err := listctl.NewSingleton(backend.endpoints(), fakeGate{authenticated: false}, notify.NewChannel())
	require.NoError(t, err)

	require.ErrorIs(t, controller.Reload(context.Background()), ierrors.ErrNotAuthenticated)
	require.ErrorIs(t, controller.Update(context.Background(), document{}), ierrors.ErrNotAuthenticated)
}
