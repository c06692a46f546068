package taskdeck

import (
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	LogLevel     string
	LogPath      string
	EmailDomains []string
}

const (
	DefaultLogLevel     = "WARN"
	DefaultEmailDomains = "gmail,hotmail,outlook,yahoo"
)

var (
	userHome, _        = os.UserHomeDir()
	DefaultDatabaseURL = path.Join(userHome, ".taskdeck", "taskdeck.db")
	DefaultLogPath     = path.Join(userHome, ".taskdeck", "taskdeck.log")
)

func LoadConfig() Config {
	confFromEnv := rawConfig{
		DatabaseURL:  os.Getenv("TASKDECK_DB_URL"),
		LogLevel:     os.Getenv("TASKDECK_LOG_LEVEL"),
		LogPath:      os.Getenv("TASKDECK_LOG_PATH"),
		EmailDomains: os.Getenv("TASKDECK_EMAIL_DOMAINS"),
	}

	if os.Getenv("TASKDECK_DEV_MODE") != "" {
		fmt.Println("Dev mode is on!")
		confFromEnv.LogLevel = "DEBUG"
		confFromEnv.DatabaseURL = path.Join(os.TempDir(), "taskdeck-test.db")
		confFromEnv.LogPath = path.Join(userHome, ".taskdeck", "dev.log")
		f, err := os.OpenFile(confFromEnv.DatabaseURL, os.O_CREATE|os.O_TRUNC, 0o744)
		if err != nil {
			panic(err)
		}
		_ = f.Close()
	}

	// load file
	cfgDir, _ := os.UserConfigDir()
	cfgDir = path.Join(cfgDir, "taskdeck")
	confFile := path.Join(cfgDir, "taskdeck.conf")
	if _, err := os.Stat(confFile); err != nil {
		log.Println("creating default conf file")
		if err := os.MkdirAll(cfgDir, 0o744); err != nil {
			panic(err)
		}
		if err := os.MkdirAll(path.Dir(DefaultDatabaseURL), 0o744); err != nil {
			panic(err)
		}
		f, err := os.Create(confFile)
		if err != nil {
			panic(err)
		}
		if _, err := f.WriteString("TASKDECK_DB_URL=" + DefaultDatabaseURL + "\n"); err != nil {
			panic(err)
		}
		if _, err := f.WriteString("TASKDECK_LOG_LEVEL=" + DefaultLogLevel + "\n"); err != nil {
			panic(err)
		}
		if _, err := f.WriteString("TASKDECK_LOG_PATH=" + DefaultLogPath + "\n"); err != nil {
			panic(err)
		}
		if _, err := f.WriteString("TASKDECK_EMAIL_DOMAINS=" + DefaultEmailDomains + "\n"); err != nil {
			panic(err)
		}
		_ = f.Close()
	}
	if err := godotenv.Load(confFile); err != nil {
		panic(err)
	}
	confFromFile := rawConfig{
		DatabaseURL:  os.Getenv("TASKDECK_DB_URL"),
		LogLevel:     os.Getenv("TASKDECK_LOG_LEVEL"),
		LogPath:      os.Getenv("TASKDECK_LOG_PATH"),
		EmailDomains: os.Getenv("TASKDECK_EMAIL_DOMAINS"),
	}

	return Config{
		DatabaseURL:  coalesce(confFromEnv.DatabaseURL, confFromFile.DatabaseURL, DefaultDatabaseURL),
		LogLevel:     coalesce(confFromEnv.LogLevel, confFromFile.LogLevel, DefaultLogLevel),
		LogPath:      coalesce(confFromEnv.LogPath, confFromFile.LogPath, DefaultLogPath),
		EmailDomains: ParseEmailDomains(coalesce(confFromEnv.EmailDomains, confFromFile.EmailDomains, DefaultEmailDomains)),
	}
}

type rawConfig struct {
	DatabaseURL  string
	LogLevel     string
	LogPath      string
	EmailDomains string
}

// ParseEmailDomains splits a comma-separated allow-list, dropping empty
// entries and surrounding whitespace.
func ParseEmailDomains(s string) []string {
	var domains []string
	for _, d := range strings.Split(s, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
