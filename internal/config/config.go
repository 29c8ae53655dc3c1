package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mesaYaAdmin/internal/shared/normalization"
)

const (
	defaultPort       = "8080"
	defaultAPIBaseURL = "http://localhost:3000"
	defaultAPITimeout = 10 * time.Second
	defaultGroupID    = "mesaya-admin"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	REST      RESTConfig      `yaml:"rest"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Websocket WebsocketConfig `yaml:"websocket"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
}

type SecurityConfig struct {
	JWTSecret    string `yaml:"jwtSecret"`
	JWTPublicKey string `yaml:"jwtPublicKey"`
}

// KafkaConfig lists the upstream topics per entity; an empty broker list
// disables the consumers.
type KafkaConfig struct {
	Brokers []string            `yaml:"brokers"`
	GroupID string              `yaml:"groupId"`
	Topics  map[string][]string `yaml:"topics"`
}

type WebsocketConfig struct {
	AllowedActions []string `yaml:"allowedActions"`
}

// Load reads the optional YAML file named by ADMIN_CONFIG_FILE and then
// applies environment variables on top of it.
func Load() (*Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("ADMIN_CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: defaultPort},
		REST:    RESTConfig{BaseURL: defaultAPIBaseURL, Timeout: defaultAPITimeout},
		Logging: LoggingConfig{Directory: "./logs", Level: "info", Format: "text"},
		Kafka: KafkaConfig{
			GroupID: defaultGroupID,
			Topics: map[string][]string{
				normalization.EntityCustomers:    {"mesaya.clientes.events"},
				normalization.EntityTables:       {"mesaya.mesas.events"},
				normalization.EntityReservations: {"mesaya.reservas.events"},
			},
		},
		Websocket: WebsocketConfig{AllowedActions: []string{"created", "updated", "deleted", "cancelled"}},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	defaultTopics := c.Kafka.Topics
	c.Kafka.Topics = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if c.Kafka.Topics == nil {
		c.Kafka.Topics = defaultTopics
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		if !ok {
			return "", false
		}
		value = strings.TrimSpace(value)
		return value, value != ""
	}

	if v, ok := get("PORT"); ok {
		c.Server.Port = v
	}
	if v, ok := get("API_BASE_URL"); ok {
		c.REST.BaseURL = v
	}
	if v, ok := get("API_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid API_TIMEOUT %q: %w", v, err)
		}
		c.REST.Timeout = timeout
	}
	if v, ok := get("LOG_DIR"); ok {
		c.Logging.Directory = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	if v, ok := get("JWT_SECRET"); ok {
		c.Security.JWTSecret = v
	}
	if v, ok := get("JWT_PUBLIC_KEY"); ok {
		// Keys passed through env files usually carry escaped newlines.
		c.Security.JWTPublicKey = strings.ReplaceAll(v, `\n`, "\n")
	}
	if v, ok := get("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(v)
	} else if v, ok := get("KAFKA_BROKER"); ok {
		c.Kafka.Brokers = splitList(v)
	}
	if v, ok := get("KAFKA_GROUP_ID"); ok {
		c.Kafka.GroupID = v
	}
	for _, entity := range []string{normalization.EntityCustomers, normalization.EntityTables, normalization.EntityReservations} {
		if v, ok := get("KAFKA_TOPICS_" + strings.ToUpper(entity)); ok {
			if c.Kafka.Topics == nil {
				c.Kafka.Topics = make(map[string][]string)
			}
			c.Kafka.Topics[entity] = splitList(v)
		}
	}
	if v, ok := get("WS_ALLOWED_ACTIONS"); ok {
		c.Websocket.AllowedActions = splitList(v)
	}
	return nil
}

func (c *Config) normalize() {
	c.REST.BaseURL = strings.TrimRight(c.REST.BaseURL, "/")
	if c.REST.Timeout <= 0 {
		c.REST.Timeout = defaultAPITimeout
	}
	for i, action := range c.Websocket.AllowedActions {
		c.Websocket.AllowedActions[i] = strings.ToLower(strings.TrimSpace(action))
	}
	if len(c.Kafka.Topics) == 0 {
		return
	}
	topics := make(map[string][]string, len(c.Kafka.Topics))
	for entity, list := range c.Kafka.Topics {
		key := normalization.NormalizeEntity(entity)
		if key == "" {
			continue
		}
		topics[key] = append(topics[key], list...)
	}
	c.Kafka.Topics = topics
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	parsed, err := url.Parse(c.REST.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("invalid API_BASE_URL %q", c.REST.BaseURL))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.GroupID == "" {
		errs = append(errs, errors.New("KAFKA_GROUP_ID is required when brokers are configured"))
	}
	return errors.Join(errs...)
}

// AllTopics flattens the per-entity topic lists.
func (k KafkaConfig) AllTopics() []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, list := range k.Topics {
		for _, topic := range list {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}
	return topics
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
