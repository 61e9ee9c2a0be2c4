package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MySQL holds the identity tables
	Database DatabaseConfig `json:"database"`

	// MongoDB holds videos, comments, upload slots and the GridFS bucket
	MongoDB MongoDBConfig `json:"mongodb"`

	Auth AuthConfig `json:"auth"`

	Storage StorageConfig `json:"storage"`

	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host            string `json:"host"`
	Port            string `json:"port"`
	GRPCPort        string `json:"grpc_port"`
	MediaServerPort string `json:"media_server_port"`
	ReadTimeout     int    `json:"read_timeout"`  // seconds
	WriteTimeout    int    `json:"write_timeout"` // seconds
	Environment     string `json:"environment"`   // development, staging, production
	EnableMetrics   bool   `json:"enable_metrics"`

	// PublicBaseURL prefixes upload slot URLs handed to clients
	PublicBaseURL string `json:"public_base_url"`
	// MediaBaseURL prefixes GridFS file ids when resolving storage references
	MediaBaseURL string `json:"media_base_url"`

	UploadRateLimit int `json:"upload_rate_limit"` // requests per minute per IP
	// UploadTimeout bounds one blob transfer; ReadTimeout does not apply to it
	UploadTimeout int `json:"upload_timeout"` // minutes
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type MongoDBConfig struct {
	Host       string `json:"host"`
	Port       string `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	BucketName string `json:"bucket_name"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	TokenTTL  int    `json:"token_ttl"` // hours
	Issuer    string `json:"issuer"`
}

// StorageConfig selects the blob backend. "gridfs" keeps files next to the
// records in Mongo, "s3" sends them to an S3-compatible bucket.
type StorageConfig struct {
	Backend        string `json:"backend"`
	SlotTTLMinutes int    `json:"slot_ttl_minutes"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3Endpoint     string `json:"s3_endpoint"`
	S3AccessKey    string `json:"-"`
	S3SecretKey    string `json:"-"`
	S3URLTTL       int    `json:"s3_url_ttl"` // minutes
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, console
}

const (
	StorageGridFS = "gridfs"
	StorageS3     = "s3"
)

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			GRPCPort:        getEnv("GRPC_PORT", "9090"),
			MediaServerPort: getEnv("MEDIA_SERVER_PORT", "8081"),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 60),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 300),
			Environment:     getEnv("ENVIRONMENT", "development"),
			EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
			PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			UploadRateLimit: getEnvAsInt("UPLOAD_RATE_LIMIT", 30),
			UploadTimeout:   getEnvAsInt("UPLOAD_TIMEOUT_MINUTES", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "wonderscape"),
			Password:     getEnv("MYSQL_PASSWORD", "wonderscape123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "wonderscape"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:       getEnv("MONGO_HOST", "localhost"),
			Port:       getEnv("MONGO_PORT", "27017"),
			Username:   getEnv("MONGO_USERNAME", "admin"),
			Password:   getEnv("MONGO_PASSWORD", "admin123"),
			Database:   getEnv("MONGO_DATABASE", "wonderscape"),
			BucketName: getEnv("MONGO_BUCKET", "media_files"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:  getEnvAsInt("JWT_TTL_HOURS", 24),
			Issuer:    getEnv("JWT_ISSUER", "wonderscape"),
		},
		Storage: StorageConfig{
			Backend:        strings.ToLower(getEnv("STORAGE_BACKEND", StorageGridFS)),
			SlotTTLMinutes: getEnvAsInt("UPLOAD_SLOT_TTL_MINUTES", 60),
			S3Bucket:       getEnv("S3_BUCKET", "wonderscape"),
			S3Region:       getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:     getEnv("S3_ENDPOINT", "http://127.0.0.1:9000/"),
			S3AccessKey:    getEnv("S3_ACCESS_KEY", "minioadmin"),
			S3SecretKey:    getEnv("S3_SECRET_KEY", "minioadmin"),
			S3URLTTL:       getEnvAsInt("S3_URL_TTL_MINUTES", 15),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// media is served by the API process unless overridden
	cfg.Server.MediaBaseURL = getEnv("MEDIA_BASE_URL", strings.TrimRight(cfg.Server.PublicBaseURL, "/")+"/media/")

	return cfg
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username != "" && cfg.MongoDB.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			cfg.MongoDB.Username,
			cfg.MongoDB.Password,
			cfg.MongoDB.Host,
			cfg.MongoDB.Port,
			cfg.MongoDB.Database,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.Database)
}

// UploadURL builds the one-time upload destination for a slot token.
func (cfg *Config) UploadURL(token string) string {
	return strings.TrimRight(cfg.Server.PublicBaseURL, "/") + "/api/v1/uploads/" + token
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
