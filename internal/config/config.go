package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Database struct {
	WriteDSN          string        `mapstructure:"write_dsn"`
	ReadDSN           string        `mapstructure:"read_dsn"`
	Host              string        `mapstructure:"host"`
	ReadHost          string        `mapstructure:"read_host"`
	Port              int           `mapstructure:"port"`
	Name              string        `mapstructure:"name"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	SSLMode           string        `mapstructure:"sslmode"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

type Config struct {
	Database Database `mapstructure:"database"`
	Server   Server   `mapstructure:"server"`
	Query    Server   `mapstructure:"query"`
	Log      Log      `mapstructure:"log"`
	Broker   Broker   `mapstructure:"broker"`
	Outbox   Outbox   `mapstructure:"outbox"`
	Consumer Consumer `mapstructure:"consumer"`
	Env      string   `mapstructure:"environment"`
}

type Server struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Broker struct {
	URL                  string        `mapstructure:"url"`
	Stream               string        `mapstructure:"stream"`
	OrderEventsSubject   string        `mapstructure:"order_events_subject"`
	ProductEventsSubject string        `mapstructure:"product_events_subject"`
	ConsumerDurable      string        `mapstructure:"consumer_durable"`
	AckWait              time.Duration `mapstructure:"ack_wait"`
	ReconnectWait        time.Duration `mapstructure:"reconnect_wait"`
}

type Outbox struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type Consumer struct {
	FetchWait    time.Duration `mapstructure:"fetch_wait"`
	FailurePause time.Duration `mapstructure:"failure_pause"`
}

func Load(cfgFile string) (Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.event-driven-analytics")
		v.AddConfigPath("/etc/event-driven-analytics")
	}

	v.SetEnvPrefix("EVENT_DRIVEN_ANALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASS")
	_ = v.BindEnv("broker.url", "BROKER_URL")

	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.connect_timeout", "5s")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.max_conn_idle_time", "5m")
	v.SetDefault("database.health_check_period", "1m")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("query.address", ":8081")
	v.SetDefault("query.read_timeout", "5s")
	v.SetDefault("query.write_timeout", "10s")
	v.SetDefault("query.idle_timeout", "60s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("broker.stream", "events")
	v.SetDefault("broker.order_events_subject", "order-events")
	v.SetDefault("broker.product_events_subject", "product-events")
	v.SetDefault("broker.consumer_durable", "order-projection-worker")
	v.SetDefault("broker.ack_wait", "30s")
	v.SetDefault("broker.reconnect_wait", "5s")
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.poll_interval", "2s")
	v.SetDefault("consumer.fetch_wait", "2s")
	v.SetDefault("consumer.failure_pause", "1s")
	v.SetDefault("environment", "dev")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg = applyDSNDefaults(cfg)
	return cfg, nil
}

func applyDSNDefaults(cfg Config) Config {
	if cfg.Database.WriteDSN == "" && cfg.Database.Host != "" && cfg.Database.Name != "" {
		cfg.Database.WriteDSN = buildDSN(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Database.User, cfg.Database.Password, cfg.Database.SSLMode)
	}
	if cfg.Database.ReadDSN == "" {
		readHost := cfg.Database.ReadHost
		if readHost == "" {
			readHost = cfg.Database.Host
		}
		if readHost != "" && cfg.Database.Name != "" {
			cfg.Database.ReadDSN = buildDSN(readHost, cfg.Database.Port, cfg.Database.Name, cfg.Database.User, cfg.Database.Password, cfg.Database.SSLMode)
		}
	}
	return cfg
}

func buildDSN(host string, port int, name, user, password, sslmode string) string {
	if sslmode == "" {
		sslmode = "disable"
	}
	creds := ""
	if user != "" {
		creds = user
		if password != "" {
			creds += ":" + password
		}
		creds += "@"
	}
	return "postgres://" + creds + host + ":" + fmt.Sprintf("%d", port) + "/" + name + "?sslmode=" + sslmode
}
