package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/testing/suite"
)

func TestRoomRepository_NextID(t *testing.T) {
	ctx, st := suite.New(t)

	roomRepo := NewRoomRepository(st.Storage, 0)

	// When: three ids are allocated
	first, err := roomRepo.NextID(ctx)
	require.NoError(t, err)
	second, err := roomRepo.NextID(ctx)
	require.NoError(t, err)
	third, err := roomRepo.NextID(ctx)
	require.NoError(t, err)

	// Then: they are the monotonic room-N sequence
	assert.Equal(t, "room-1", first)
	assert.Equal(t, "room-2", second)
	assert.Equal(t, "room-3", third)
}

func TestRoomRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	roomRepo := NewRoomRepository(st.Storage, 0)

	// Given: a room with players and marks
	room := entity.NewRoom("room-1")
	room.AddPlayer(&entity.Player{ID: "a", Name: "alice", Points: 1})
	room.AddPlayer(&entity.Player{ID: "b", Name: "bob"})
	room.Board[4] = entity.MarkX
	room.Current = 1

	// When: CreateOrUpdate is called
	err := roomRepo.CreateOrUpdate(ctx, room)

	// Then: the room round-trips intact
	require.NoError(t, err)

	retrieved, err := roomRepo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room, retrieved)
}

func TestRoomRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage, 0)

		// When: GetByID is called with a non-existent id
		retrieved, err := roomRepo.GetByID(ctx, "room-404")

		// Then: ErrRoomNotFound is returned
		require.ErrorIs(t, err, ErrRoomNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestRoomRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	roomRepo := NewRoomRepository(st.Storage, 0)

	room := entity.NewRoom("room-1")
	require.NoError(t, roomRepo.CreateOrUpdate(ctx, room))

	// When: the room is deleted
	require.NoError(t, roomRepo.DeleteByID(ctx, room.ID))

	// Then: it is gone
	_, err := roomRepo.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomRepository_TTL(t *testing.T) {
	t.Run("Writes apply the configured idle expiry", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage, time.Hour)

		room := entity.NewRoom("room-1")
		require.NoError(t, roomRepo.CreateOrUpdate(ctx, room))

		ttl, err := st.Storage.TTL(ctx, "room:room-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)
	})

	t.Run("Zero ttl keeps rooms forever", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage, 0)

		room := entity.NewRoom("room-1")
		require.NoError(t, roomRepo.CreateOrUpdate(ctx, room))

		ttl, err := st.Storage.TTL(ctx, "room:room-1").Result()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-1), ttl)
	})
}
