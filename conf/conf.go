package conf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every setting the server needs. Values come from an optional
// TOML file first, then from environment variables; env wins so deployments
// can override a checked-in file without editing it.
type Config struct {
	ListenAddr string `toml:"listen_addr"`
	AWSRegion  string `toml:"aws_region"`
	JWTKey     string `toml:"jwt_key"`

	UsersTable              string `toml:"users_table"`
	QuizzesTable            string `toml:"quizzes_table"`
	SubmissionsTable        string `toml:"submissions_table"`
	ResourcesTable          string `toml:"resources_table"`
	HelpdeskApplicantsTable string `toml:"helpdesk_applicants_table"`
	HelpdeskHelpersTable    string `toml:"helpdesk_helpers_table"`

	ResourceBucket     string `toml:"resource_bucket"`
	ChangeFeedQueueURL string `toml:"change_feed_queue_url"`
}

// Load reads the TOML file at path (skipped when path is empty or the file
// does not exist), applies env overrides, and validates required settings.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr:              ":8080",
		AWSRegion:               "eu-central-1",
		UsersTable:              "GalaxyUsers",
		QuizzesTable:            "GalaxyQuizzes",
		SubmissionsTable:        "GalaxySubmissions",
		ResourcesTable:          "GalaxyResources",
		HelpdeskApplicantsTable: "GalaxyHelpdeskApplicants",
		HelpdeskHelpersTable:    "GalaxyHelpdeskHelpers",
		ResourceBucket:          "galaxy-resources",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg.ListenAddr, "LISTEN_ADDR")
	applyEnv(&cfg.AWSRegion, "AWS_REGION")
	applyEnv(&cfg.JWTKey, "JWT_KEY")
	applyEnv(&cfg.UsersTable, "USERS_TABLE")
	applyEnv(&cfg.QuizzesTable, "QUIZZES_TABLE")
	applyEnv(&cfg.SubmissionsTable, "SUBMISSIONS_TABLE")
	applyEnv(&cfg.ResourcesTable, "RESOURCES_TABLE")
	applyEnv(&cfg.HelpdeskApplicantsTable, "HELPDESK_APPLICANTS_TABLE")
	applyEnv(&cfg.HelpdeskHelpersTable, "HELPDESK_HELPERS_TABLE")
	applyEnv(&cfg.ResourceBucket, "RESOURCE_BUCKET")
	applyEnv(&cfg.ChangeFeedQueueURL, "CHANGE_FEED_QUEUE_URL")

	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("JWT_KEY is not set")
	}

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
