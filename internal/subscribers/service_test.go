package subscribers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bissquit/subscribers-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	subscribers []domain.Subscriber
	nextID      int
	createCalls int
	err         error
}

func newMockRepository() *mockRepository {
	return &mockRepository{}
}

func (m *mockRepository) ListNames(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var names []string
	for _, s := range m.subscribers {
		names = append(names, s.Name)
	}
	return names, nil
}

func (m *mockRepository) List(_ context.Context) ([]domain.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Subscriber(nil), m.subscribers...), nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*domain.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id == "malformed" {
		return nil, fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	for _, s := range m.subscribers {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) Create(_ context.Context, sub *domain.Subscriber) error {
	m.createCalls++
	if m.err != nil {
		return m.err
	}
	m.nextID++
	sub.ID = fmt.Sprintf("id-%d", m.nextID)
	m.subscribers = append(m.subscribers, *sub)
	return nil
}

func TestService_CreateThenGet(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Name: "Ana", SubscribedChannel: "X"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "X", got.SubscribedChannel)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing name", CreateInput{SubscribedChannel: "X"}},
		{"missing channel", CreateInput{Name: "Ana"}},
		{"both missing", CreateInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			service := NewService(repo)

			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, repo.createCalls, "store must not be touched")
			assert.Empty(t, repo.subscribers)

			var svcErr *Error
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, "Name and subscribedChannel are required", svcErr.PublicMessage())
		})
	}
}

func TestService_Create_DuplicatesAllowed(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	first, err := service.Create(ctx, CreateInput{Name: "Ana", SubscribedChannel: "X"})
	require.NoError(t, err)
	second, err := service.Create(ctx, CreateInput{Name: "Ana", SubscribedChannel: "X"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestService_Create_StoreFailure(t *testing.T) {
	repo := newMockRepository()
	repo.err = errors.New("connection reset")
	service := NewService(repo)

	_, err := service.Create(context.Background(), CreateInput{Name: "Ana", SubscribedChannel: "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, repo.err)
	assert.Equal(t, 1, repo.createCalls)
}

func TestService_Get_NotFound(t *testing.T) {
	service := NewService(newMockRepository())

	_, err := service.Get(context.Background(), "never-issued")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStore)
}

func TestService_Get_MalformedID(t *testing.T) {
	service := NewService(newMockRepository())

	_, err := service.Get(context.Background(), "malformed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestService_ListNames_IsProjectionOfList(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	for _, in := range []CreateInput{
		{Name: "Ana", SubscribedChannel: "X"},
		{Name: "Bruno", SubscribedChannel: "Y"},
		{Name: "Carla", SubscribedChannel: "Z"},
	} {
		_, err := service.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := service.List(ctx)
	require.NoError(t, err)
	names, err := service.ListNames(ctx)
	require.NoError(t, err)

	projected := make([]string, 0, len(list))
	for _, s := range list {
		projected = append(projected, s.Name)
	}
	assert.Equal(t, projected, names)
}

func TestService_EmptyStore(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	names, err := service.ListNames(ctx)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_List_StoreFailure(t *testing.T) {
	repo := newMockRepository()
	repo.err = errors.New("timeout")
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.ListNames(ctx)
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "Error retrieving subscriber names")

	_, err = service.List(ctx)
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "timeout")
}
