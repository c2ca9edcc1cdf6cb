package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so operators can keep a readable config file.
type StructuredJSONConfig struct {
	App struct {
		AdminPassword       string   `json:"admin_password"`
		AdminPasswordBcrypt string   `json:"admin_password_bcrypt"`
		CSRFSignKey         string   `json:"csrf_sign_key"`
		HashKey             string   `json:"hash_key"`
		SessionTTL          Duration `json:"session_ttl"`
		CSRFTokenTTL        Duration `json:"csrf_token_ttl"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		PublicOrigin   string   `json:"public_origin"`
	} `json:"server,omitempty"`

	ImageHost struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		Folder         string   `json:"folder"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"image_host,omitempty"`

	Uploads struct {
		MaxFileBytes int64 `json:"max_file_bytes"`
		MaxFiles     int   `json:"max_files"`
	} `json:"uploads,omitempty"`

	RateLimit struct {
		LoginWindow   Duration `json:"login_window"`
		LoginMax      int      `json:"login_max"`
		ContactWindow Duration `json:"contact_window"`
		ContactMax    int      `json:"contact_max"`
	} `json:"rate_limit,omitempty"`

	Mail struct {
		SMTPHost string `json:"smtp_host"`
		SMTPPort int    `json:"smtp_port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
		To       string `json:"to"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AdminPassword:       jsonCfg.App.AdminPassword,
			AdminPasswordBcrypt: jsonCfg.App.AdminPasswordBcrypt,
			CSRFSignKey:         jsonCfg.App.CSRFSignKey,
			HashKey:             jsonCfg.App.HashKey,
			SessionTTL:          time.Duration(jsonCfg.App.SessionTTL),
			CSRFTokenTTL:        time.Duration(jsonCfg.App.CSRFTokenTTL),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			PublicOrigin:   jsonCfg.Server.PublicOrigin,
		},
		ImageHost: ImageHost{
			BaseURL:        jsonCfg.ImageHost.BaseURL,
			APIKey:         jsonCfg.ImageHost.APIKey,
			Folder:         jsonCfg.ImageHost.Folder,
			RequestTimeout: time.Duration(jsonCfg.ImageHost.RequestTimeout),
		},
		Uploads: Uploads{
			MaxFileBytes: jsonCfg.Uploads.MaxFileBytes,
			MaxFiles:     jsonCfg.Uploads.MaxFiles,
		},
		RateLimit: RateLimit{
			LoginWindow:   time.Duration(jsonCfg.RateLimit.LoginWindow),
			LoginMax:      jsonCfg.RateLimit.LoginMax,
			ContactWindow: time.Duration(jsonCfg.RateLimit.ContactWindow),
			ContactMax:    jsonCfg.RateLimit.ContactMax,
		},
		Mail: Mail{
			SMTPHost: jsonCfg.Mail.SMTPHost,
			SMTPPort: jsonCfg.Mail.SMTPPort,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
			To:       jsonCfg.Mail.To,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
