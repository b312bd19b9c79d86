package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugAddress    string
		ShutdownTimeout time.Duration
	}

	// DataConfig controls the generated in-memory snapshot.
	DataConfig struct {
		Students int
		Seed     int64 // 0: random
	}

	DirectoryConfig struct {
		DefaultLimit int
	}

	AttentionConfig struct {
		Window time.Duration
		Tag    string
	}

	Config struct {
		Env              string
		Build            string
		AppName          string
		Debug            bool
		TestMode         bool
		RollbarToken     string
		DefaultFromEmail string
		StaffName        string // author of notes, tasks and emails
		Server           ServerConfig
		Data             DataConfig
		Directory        DirectoryConfig
		Attention        AttentionConfig
	}
)

// NewConfig loads the configuration from defaults, `config/.env.<env>` and the environment.
// Environment variables are prefixed with the uppercased env name, eg. `DEV_SERVER_ADDRESS`.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Admit CRM")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("defaultFromEmail", "Admit CRM <noreply@localhost>")
	v.SetDefault("staffName", "Admissions Team")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("data.students", 50)
	v.SetDefault("data.seed", int64(0))
	v.SetDefault("directory.defaultLimit", 25)
	v.SetDefault("attention.window", 7*24*time.Hour)
	v.SetDefault("attention.tag", "Needs Essay Help")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(ProjectRoot(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		RollbarToken:     v.GetString("rollbarToken"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		StaffName:        v.GetString("staffName"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugAddress:    v.GetString("server.debugAddress"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Data: DataConfig{
			Students: v.GetInt("data.students"),
			Seed:     v.GetInt64("data.seed"),
		},
		Directory: DirectoryConfig{
			DefaultLimit: v.GetInt("directory.defaultLimit"),
		},
		Attention: AttentionConfig{
			Window: v.GetDuration("attention.window"),
			Tag:    v.GetString("attention.tag"),
		},
	}
}

// FromAddress parses DefaultFromEmail, falling back to a bare localhost address.
func (c *Config) FromAddress() mail.Address {
	if addr, err := mail.ParseAddress(c.DefaultFromEmail); err == nil {
		return *addr
	}
	return mail.Address{Name: c.AppName, Address: "noreply@localhost"}
}
