package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/logging"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	JWTSecret string
	TokenTTL  time.Duration

	QueryTimeout   time.Duration
	RequestTimeout time.Duration

	// ChangeStreams tails MongoDB change streams for the live feed. It needs
	// a replica set; without it handlers publish their own writes.
	ChangeStreams bool

	// EscalationAfter is how long a high or critical emergency may stay
	// active before the scheduler raises a system alert for it.
	EscalationAfter time.Duration

	SendgridAPIKey string
	AlertEmailFrom string
	AlertEmailTo   string
}

// New sets up all config related services
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("db_uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("db_name", "lifeline")
	v.SetDefault("env", "local")
	v.SetDefault("token_ttl", "12h")
	v.SetDefault("query_timeout", "10s")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("escalation_after", "10m")
	v.SetDefault("alert_email_from", "alerts@lifeline.local")

	conf := &Config{
		URL:             v.GetString("db_uri"),
		DatabaseName:    v.GetString("db_name"),
		BaseURL:         v.GetString("base_url"),
		Port:            v.GetString("port"),
		Env:             v.GetString("env"),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        v.GetDuration("token_ttl"),
		QueryTimeout:    v.GetDuration("query_timeout"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		ChangeStreams:   v.GetBool("change_streams"),
		EscalationAfter: v.GetDuration("escalation_after"),
		SendgridAPIKey:  v.GetString("sendgrid_api_key"),
		AlertEmailFrom:  v.GetString("alert_email_from"),
		AlertEmailTo:    v.GetString("alert_email_to"),
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(conf.Env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return conf
}

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
