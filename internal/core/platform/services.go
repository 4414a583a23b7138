package platform

import "github.com/artpar/deployconf/internal/core/deploy"

// =============================================================================
// Service Defaults
// =============================================================================

const (
	DefaultRedisVersion    = "7.2"
	DefaultRedisMemoryMB   = 1024
	DefaultVarnishMemoryMB = 1024
	DefaultRabbitMQVersion = "3.12"
	DefaultElasticVersion  = "7.17"
)

// =============================================================================
// Services
// =============================================================================

// RedisService runs an additional redis instance, typically for sessions.
type RedisService struct {
	Version    string `json:"version"`
	MemoryMB   int    `json:"memory_mb"`
	Persistent bool   `json:"persistent"`
}

// NewRedisService creates a redis service with the default version and memory.
func NewRedisService() *RedisService {
	return &RedisService{Version: DefaultRedisVersion, MemoryMB: DefaultRedisMemoryMB}
}

func (r *RedisService) TaskKind() string { return KindRedis }

func newRedisFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	memory, err := intAttribute(a, "memory_mb", DefaultRedisMemoryMB)
	if err != nil {
		return nil, err
	}
	persistent, err := boolAttribute(a, "persistent", false)
	if err != nil {
		return nil, err
	}
	return &RedisService{
		Version:    orDefault(a["version"], DefaultRedisVersion),
		MemoryMB:   memory,
		Persistent: persistent,
	}, nil
}

// VarnishService runs varnish in front of the application.
type VarnishService struct {
	Version  string `json:"version"`
	MemoryMB int    `json:"memory_mb"`
}

func NewVarnishService() *VarnishService {
	return &VarnishService{Version: DefaultVarnishVersion, MemoryMB: DefaultVarnishMemoryMB}
}

func (v *VarnishService) TaskKind() string { return KindVarnishCache }

func newVarnishServiceFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	memory, err := intAttribute(a, "memory_mb", DefaultVarnishMemoryMB)
	if err != nil {
		return nil, err
	}
	return &VarnishService{
		Version:  orDefault(a["version"], DefaultVarnishVersion),
		MemoryMB: memory,
	}, nil
}

type RabbitMQService struct {
	Version string `json:"version"`
}

func (r *RabbitMQService) TaskKind() string { return KindRabbitMQ }

func newRabbitMQFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	return &RabbitMQService{Version: orDefault(a["version"], DefaultRabbitMQVersion)}, nil
}

type ElasticsearchService struct {
	Version string `json:"version"`
}

func (e *ElasticsearchService) TaskKind() string { return KindElasticsearch }

func newElasticsearchFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	return &ElasticsearchService{Version: orDefault(a["version"], DefaultElasticVersion)}, nil
}
