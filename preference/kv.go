package preference

import (
	"strings"

	"github.com/philippgille/gokv"
	"github.com/philippgille/gokv/redis"
	"github.com/philippgille/gokv/syncmap"

	"github.com/corpix/textenc/errors"
)

type (
	KVConfig struct {
		Backend string         `yaml:"backend"`
		Prefix  string         `yaml:"prefix"`
		Redis   *KVRedisConfig `yaml:"redis,omitempty"`
	}
	KVRedisConfig struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password,omitempty"`
		DB       int    `yaml:"db"`
	}
	KVBackend string

	// KV keeps preferences in a gokv store keyed by client id.
	KV struct {
		Config *KVConfig
		Store  gokv.Store
	}
)

const (
	KVBackendMemory KVBackend = "memory"
	KVBackendRedis  KVBackend = "redis"
)

func (c *KVConfig) Default() {
	if c.Backend == "" {
		c.Backend = string(KVBackendMemory)
	}
	if c.Prefix == "" {
		c.Prefix = "textenc:preferences:"
	}
	if KVBackend(strings.ToLower(c.Backend)) == KVBackendRedis && c.Redis == nil {
		c.Redis = &KVRedisConfig{}
	}
	if c.Redis != nil {
		c.Redis.Default()
	}
}

func (c *KVConfig) Validate() error {
	switch KVBackend(strings.ToLower(c.Backend)) {
	case KVBackendMemory:
	case KVBackendRedis:
		if c.Redis == nil || c.Redis.Address == "" {
			return errors.New("redis backend requires redis.address")
		}
	default:
		return errors.Errorf(
			"unsupported kv backend %q, expected one of: %q",
			c.Backend, []KVBackend{KVBackendMemory, KVBackendRedis},
		)
	}
	return nil
}

func (c *KVRedisConfig) Default() {
	if c.Address == "" {
		c.Address = "127.0.0.1:6379"
	}
}

//

func (s *KV) key(id string) string { return s.Config.Prefix + id }

func (s *KV) Get(id string) (*Preferences, bool, error) {
	p := &Preferences{}
	found, err := s.Store.Get(s.key(id), p)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to load preferences for %q", id)
	}
	if !found {
		return nil, false, nil
	}
	return p, true, nil
}

func (s *KV) Set(id string, p *Preferences) error {
	err := s.Store.Set(s.key(id), p)
	if err != nil {
		return errors.Wrapf(err, "failed to save preferences for %q", id)
	}
	return nil
}

func (s *KV) Delete(id string) error {
	return s.Store.Delete(s.key(id))
}

func (s *KV) Close() error {
	return s.Store.Close()
}

func NewKV(c *KVConfig, codec Codec) (*KV, error) {
	var (
		store gokv.Store
		err   error
	)

	switch KVBackend(strings.ToLower(c.Backend)) {
	case KVBackendMemory:
		store = syncmap.NewStore(syncmap.Options{Codec: codec})
	case KVBackendRedis:
		store, err = redis.NewClient(redis.Options{
			Address:  c.Redis.Address,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Codec:    codec,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to connect to redis at %q", c.Redis.Address)
		}
	default:
		return nil, errors.Errorf("unsupported kv backend %q", c.Backend)
	}

	return &KV{Config: c, Store: store}, nil
}
