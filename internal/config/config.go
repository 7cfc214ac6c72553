package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"3000"`
	Redis      Redis  `yaml:"redis"`
	RoomTTL    string `yaml:"room-ttl" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// GetRoomTTL - idle-room expiry; "0" disables it.
func (that *Config) GetRoomTTL() (time.Duration, error) {
	if that.RoomTTL == "" || that.RoomTTL == "0" {
		return 0, nil
	}

	ttl, err := time.ParseDuration(that.RoomTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid room-ttl: %w", err)
	}

	return ttl, nil
}
