package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

var _ repository.DraftStore = (*RedisDraftStore)(nil)

const defaultKeyPrefix = "warehouse:export:draft:"

// RedisDraftStore borradores en Redis; el TTL de la clave es la expiración del lado servidor.
type RedisDraftStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisDraftStore conecta y verifica con PING.
func NewRedisDraftStore(cfg RedisConfig) (*RedisDraftStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: conectar a %s: %w", cfg.Addr, err)
	}
	return NewRedisDraftStoreWithClient(client, ""), nil
}

// NewRedisDraftStoreWithClient usa un cliente existente (tests o cliente compartido).
func NewRedisDraftStoreWithClient(client *redis.Client, keyPrefix string) *RedisDraftStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisDraftStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisDraftStore) Save(ctx context.Context, d *entity.ExportDraft, ttl time.Duration) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("redis: serializar borrador: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+d.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar borrador %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*entity.ExportDraft, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	return s.decode(id, payload, err)
}

// Take usa GETDEL: solo un llamador obtiene el borrador.
func (s *RedisDraftStore) Take(ctx context.Context, id string) (*entity.ExportDraft, error) {
	payload, err := s.client.GetDel(ctx, s.keyPrefix+id).Bytes()
	return s.decode(id, payload, err)
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis: borrar borrador %s: %w", id, err)
	}
	return nil
}

// Close cierra el cliente.
func (s *RedisDraftStore) Close() error {
	return s.client.Close()
}

func (s *RedisDraftStore) decode(id string, payload []byte, err error) (*entity.ExportDraft, error) {
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoActiveOrder
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer borrador %s: %w", id, err)
	}
	var d entity.ExportDraft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("redis: deserializar borrador %s: %w", id, err)
	}
	return &d, nil
}
