package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

var ErrRoomNotFound = errors.New("room not found")

const roomCounterKey = "room:counter"

type RoomRepository interface {
	NextID(ctx context.Context) (string, error)
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbRoom struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomRepository - rooms are stored as JSON blobs under room:{id}.
// A non-zero ttl bounds the lifetime of idle rooms; every write refreshes it.
func NewRoomRepository(client *redis.Client, ttl time.Duration) RoomRepository {
	return &dbRoom{
		client: client,
		ttl:    ttl,
	}
}

// NextID - allocates a fresh monotonically-unique room identifier.
// The counter lives in redis, so identifiers stay unique across restarts.
func (that *dbRoom) NextID(ctx context.Context) (string, error) {
	seq, err := that.client.Incr(ctx, roomCounterKey).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate room id: %w", err)
	}

	return fmt.Sprintf("room-%d", seq), nil
}

func (that *dbRoom) CreateOrUpdate(ctx context.Context, room *entity.Room) error {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("could not marshal room: %w", err)
	}

	roomKey := "room:" + room.ID
	if err = that.client.Set(ctx, roomKey, roomJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (that *dbRoom) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	roomKey := "room:" + id

	response, err := that.client.Get(ctx, roomKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}

	var existingRoom entity.Room
	if err = json.Unmarshal([]byte(response), &existingRoom); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &existingRoom, nil
}

func (that *dbRoom) DeleteByID(ctx context.Context, id string) error {
	roomKey := "room:" + id

	if err := that.client.Del(ctx, roomKey).Err(); err != nil {
		return fmt.Errorf("failed to delete room by ID: %w", err)
	}

	return nil
}
