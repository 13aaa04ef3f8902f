package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	User     string
	Password string
	Host     string
	Port     uint16
	Name     string
	SSLMode  string
}

func lookupPassword() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}
	path, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func NewDatabase() (*Database, error) {
	required := map[string]string{
		"POSTGRES_USER": "", "POSTGRES_HOST": "", "POSTGRES_DB": "",
	}
	for key := range required {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil, fmt.Errorf("no %s env variable set", key)
		}
		required[key] = v
	}

	password, err := lookupPassword()
	if err != nil {
		return nil, err
	}

	port, err := strconv.ParseUint(lookupOr("POSTGRES_PORT", "5432"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("unable to convert POSTGRES_PORT to uint16: %w", err)
	}

	db := &Database{
		User:     required["POSTGRES_USER"],
		Password: password,
		Host:     required["POSTGRES_HOST"],
		Port:     uint16(port),
		Name:     required["POSTGRES_DB"],
		SSLMode:  lookupOr("POSTGRES_SSLMODE", "disable"),
	}
	return db, nil
}

func (d Database) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// DatabaseURL prefers DATABASE_URL and falls back to the POSTGRES_* family.
func DatabaseURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}
	db, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return db.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DatabaseURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
