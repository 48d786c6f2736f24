package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the externally configurable attendance policy.
type AttendanceConfig struct {
	Workdays        []string
	StartHour       int
	StandardMinutes int
	ScanLimit       int
	Timezone        string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; env vars win.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	startHour, err := strconv.Atoi(getEnv("ATTENDANCE_START_HOUR", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_START_HOUR: %w", err)
	}

	standardMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_STANDARD_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_STANDARD_MINUTES: %w", err)
	}

	scanLimit, err := strconv.Atoi(getEnv("ATTENDANCE_SCAN_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SCAN_LIMIT: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Workdays:        getEnvSlice("ATTENDANCE_WORKDAYS", "Mon,Tue,Wed,Thu,Fri"),
		StartHour:       startHour,
		StandardMinutes: standardMinutes,
		ScanLimit:       scanLimit,
		Timezone:        getEnv("ATTENDANCE_TIMEZONE", "UTC"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.StartHour < 0 || c.Attendance.StartHour > 23 {
		return fmt.Errorf("ATTENDANCE_START_HOUR must be between 0 and 23")
	}
	if c.Attendance.StandardMinutes <= 0 {
		return fmt.Errorf("ATTENDANCE_STANDARD_MINUTES must be positive")
	}
	if c.Attendance.ScanLimit <= 0 {
		return fmt.Errorf("ATTENDANCE_SCAN_LIMIT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

var weekdayNames = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

// AttendancePolicy builds the attendance.Policy from configuration.
func (c *Config) AttendancePolicy() (attendance.Policy, error) {
	policy := attendance.DefaultPolicy()

	workdays := make(map[time.Weekday]bool, len(c.Attendance.Workdays))
	for _, name := range c.Attendance.Workdays {
		day, ok := weekdayNames[strings.TrimSpace(name)]
		if !ok {
			return attendance.Policy{}, fmt.Errorf("invalid weekday %q in ATTENDANCE_WORKDAYS", name)
		}
		workdays[day] = true
	}
	policy.Workdays = workdays

	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	policy.Location = loc

	policy.StartHour = c.Attendance.StartHour
	policy.StandardShiftMinutes = c.Attendance.StandardMinutes
	policy.ShiftScanLimit = c.Attendance.ScanLimit

	return policy, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
