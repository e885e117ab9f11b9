package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT (phone bridge)
	MQTTBroker          string
	MQTTClientIDHub     string
	MQTTClientIDSim     string
	MQTTClientIDConsole string
	TopicLocation       string

	// Device GPS
	GPSSerialPort string
	GPSBaudRate   int

	// Environment capability: true when running against the simulator
	// instead of physical hardware. The phone bridge is skipped entirely
	// and the position feed comes from the simulated track.
	Simulated    bool
	SimCenterLat float64
	SimCenterLon float64

	// Feed toggle for the phone-relayed location stream.
	MobileKitEnabled bool

	// Timing (milliseconds)
	PositionPollInterval int
	FrameTickInterval    int

	// Web panel
	WebServerPort int

	// Optional OLED hand panel
	OLEDEnabled bool
	OLEDI2CAddr uint16

	// Logging
	LogLevel    string
	LogFilePath string
}

// Package-level unexported variables for the config singleton. External
// code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_HUB":
		c.MQTTClientIDHub = value
	case "MQTT_CLIENT_ID_SIM":
		c.MQTTClientIDSim = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "TOPIC_LOCATION":
		c.TopicLocation = value

	// Device GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Environment
	case "SIMULATED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid SIMULATED %q: %w", value, err)
		}
		c.Simulated = b
	case "SIM_CENTER_LAT":
		lat, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SIM_CENTER_LAT %q: %w", value, err)
		}
		if lat < -90 || lat > 90 {
			return fmt.Errorf("SIM_CENTER_LAT must be -90..90, got %v", lat)
		}
		c.SimCenterLat = lat
	case "SIM_CENTER_LON":
		lon, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SIM_CENTER_LON %q: %w", value, err)
		}
		if lon < -180 || lon > 180 {
			return fmt.Errorf("SIM_CENTER_LON must be -180..180, got %v", lon)
		}
		c.SimCenterLon = lon

	// Feed toggle
	case "MOBILEKIT_ENABLED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid MOBILEKIT_ENABLED %q: %w", value, err)
		}
		c.MobileKitEnabled = b

	// Timing
	case "POSITION_POLL_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid POSITION_POLL_INTERVAL %q: %w", value, err)
		}
		c.PositionPollInterval = interval
	case "FRAME_TICK_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid FRAME_TICK_INTERVAL %q: %w", value, err)
		}
		c.FrameTickInterval = interval

	// Web panel
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// OLED
	case "OLED_ENABLED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid OLED_ENABLED %q: %w", value, err)
		}
		c.OLEDEnabled = b
	case "OLED_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid OLED_I2C_ADDR %q: %w", value, err)
		}
		c.OLEDI2CAddr = uint16(addr)

	// Logging
	case "LOG_LEVEL":
		c.LogLevel = value
	case "LOG_FILE_PATH":
		c.LogFilePath = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if !c.Simulated {
		if c.MQTTBroker == "" {
			return fmt.Errorf("MQTT_BROKER is required")
		}
		if c.TopicLocation == "" {
			return fmt.Errorf("TOPIC_LOCATION is required")
		}
		if c.GPSSerialPort == "" {
			return fmt.Errorf("GPS_SERIAL_PORT is required")
		}
		if c.GPSBaudRate == 0 {
			return fmt.Errorf("GPS_BAUD_RATE is required")
		}
	}
	if c.PositionPollInterval == 0 {
		return fmt.Errorf("POSITION_POLL_INTERVAL is required")
	}
	if c.FrameTickInterval == 0 {
		return fmt.Errorf("FRAME_TICK_INTERVAL is required")
	}
	if c.WebServerPort == 0 {
		return fmt.Errorf("WEB_SERVER_PORT is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses sync.Once
// so only the first call loads.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
