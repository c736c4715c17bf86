package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Points   Points
	Exams    Exams
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}
type Points struct {
	// ReferralBonus is credited to a referrer when a referred user registers.
	ReferralBonus int
}
type Exams struct {
	// AllowConcurrentAttempts permits a student to hold more than one open
	// attempt at the same exam.
	AllowConcurrentAttempts bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REFERRAL_BONUS_POINTS", 50)
	viper.SetDefault("ALLOW_CONCURRENT_ATTEMPTS", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Points.ReferralBonus = viper.GetInt("REFERRAL_BONUS_POINTS")
	config.Exams.AllowConcurrentAttempts = viper.GetBool("ALLOW_CONCURRENT_ATTEMPTS")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
