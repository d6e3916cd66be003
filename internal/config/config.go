package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string
	PostgresConn  string
	AWSRegion     string
	BucketName    string
	UserPoolID    string
	ClientID      string
	UploadDir     string
	MigrationsDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
		PostgresConn:  os.Getenv("POSTGRES_CONN"),
		AWSRegion:     os.Getenv("AWS_REGION"),
		BucketName:    os.Getenv("BUCKET_NAME"),
		UserPoolID:    os.Getenv("USER_POOL_ID"),
		ClientID:      os.Getenv("USER_POOL_CLIENT_ID"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	if c.PostgresConn == "" {
		return nil, fmt.Errorf("POSTGRES_CONN is required")
	}
	if c.BucketName == "" {
		return nil, fmt.Errorf("BUCKET_NAME is required")
	}
	if c.ServerAddress == "" {
		c.ServerAddress = "0.0.0.0:8080"
	}
	if c.UploadDir == "" {
		c.UploadDir = "./uploads"
	}
	if c.MigrationsDir == "" {
		c.MigrationsDir = "./migrations"
	}

	return c, nil
}
