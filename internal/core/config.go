package core

import (
	"fmt"
	"os"

	"github.com/jo-hoe/snapcam/internal/backend/members"
	"github.com/jo-hoe/snapcam/internal/backend/snapshot"
	"github.com/jo-hoe/snapcam/internal/common"
	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = 5000
	DefaultSnapshotPath = "pics/snapshot.jpg"
)

type SnapshotConfig struct {
	Type             string `yaml:"type" validate:"oneof=file sqlite redis"`
	Path             string `yaml:"path" validate:"required"`
	ConnectionString string `yaml:"connectionString"`
}

type ServiceConfig struct {
	Port     int            `yaml:"port" validate:"min=1,max=65535"`
	Members  []string       `yaml:"members" validate:"required,min=1,dive,required"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	// BodyLimit caps request bodies, e.g. "10M". Empty means no limit.
	BodyLimit string `yaml:"bodyLimit"`
}

// DefaultConfig returns the configuration used when no config file is present
func DefaultConfig() *ServiceConfig {
	config := &ServiceConfig{}
	applyDefaults(config)
	return config
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks field constraints plus the rules that depend on the snapshot store type
func (config *ServiceConfig) Validate() error {
	if err := common.ValidateStruct(config); err != nil {
		return err
	}

	if config.Snapshot.Type != snapshot.TypeFile && config.Snapshot.ConnectionString == "" {
		return fmt.Errorf("snapshot store type %s requires a connectionString", config.Snapshot.Type)
	}

	if config.BodyLimit != "" {
		if _, err := bytes.Parse(config.BodyLimit); err != nil {
			return fmt.Errorf("invalid bodyLimit %q: %w", config.BodyLimit, err)
		}
	}

	return nil
}

func applyDefaults(config *ServiceConfig) {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Members == nil {
		config.Members = append([]string(nil), members.DefaultMembers...)
	}
	if config.Snapshot.Type == "" {
		config.Snapshot.Type = snapshot.TypeFile
	}
	if config.Snapshot.Path == "" {
		config.Snapshot.Path = DefaultSnapshotPath
	}
}
