package config

import (
	"errors"
	"strings"
	"time"

	libconfig "mspbackup/backend/libs/config"
	"mspbackup/backend/services/storage-report/internal/clients"
	"mspbackup/backend/services/storage-report/internal/service"
)

// Config defines storage report configuration.
type Config struct {
	API struct {
		URL                string            `yaml:"url" env:"STORAGE_REPORT_API_URL"`
		PartnerName        string            `yaml:"partnerName" env:"STORAGE_REPORT_PARTNER_NAME"`
		Username           string            `yaml:"username" env:"STORAGE_REPORT_USERNAME"`
		Password           string            `yaml:"password" env:"STORAGE_REPORT_PASSWORD"`
		ProxyURL           string            `yaml:"proxyUrl" env:"STORAGE_REPORT_PROXY_URL"`
		CAFile             string            `yaml:"caFile" env:"STORAGE_REPORT_CA_FILE"`
		InsecureSkipVerify bool              `yaml:"insecureSkipVerify" env:"STORAGE_REPORT_INSECURE_SKIP_VERIFY"`
		TimeoutSeconds     int               `yaml:"timeoutSeconds" env:"STORAGE_REPORT_API_TIMEOUT"`
		Headers            map[string]string `yaml:"headers" env:"-"`
	} `yaml:"api"`
	Report struct {
		CSVFile          string `yaml:"csvFile" env:"STORAGE_REPORT_CSV_FILE"`
		CustomerFilter   int64  `yaml:"customerFilter" env:"STORAGE_REPORT_CUSTOMER_FILTER"`
		AccountFilter    int64  `yaml:"accountFilter" env:"STORAGE_REPORT_ACCOUNT_FILTER"`
		RecordsCount     int    `yaml:"recordsCount" env:"STORAGE_REPORT_RECORDS_COUNT"`
		PartnerFields    []int  `yaml:"partnerFields" env:"STORAGE_REPORT_PARTNER_FIELDS"`
		FetchRecursively bool   `yaml:"fetchRecursively" env:"STORAGE_REPORT_FETCH_RECURSIVELY"`
	} `yaml:"report"`
	Log struct {
		ConsoleLevel string `yaml:"consoleLevel" env:"STORAGE_REPORT_LOG_CONSOLE_LEVEL"`
		FileLevel    string `yaml:"fileLevel" env:"STORAGE_REPORT_LOG_FILE_LEVEL"`
		File         string `yaml:"file" env:"STORAGE_REPORT_LOG_FILE"`
		Encoding     string `yaml:"encoding" env:"STORAGE_REPORT_LOG_ENCODING"`
	} `yaml:"log"`
	Mail struct {
		Enabled     bool   `yaml:"enabled" env:"STORAGE_REPORT_MAIL_ENABLED"`
		Server      string `yaml:"server" env:"STORAGE_REPORT_MAIL_SERVER"`
		Port        int    `yaml:"port" env:"STORAGE_REPORT_MAIL_PORT"`
		User        string `yaml:"user" env:"STORAGE_REPORT_MAIL_USER"`
		Destination string `yaml:"destination" env:"STORAGE_REPORT_MAIL_DESTINATION"`
		TLS         string `yaml:"tls" env:"STORAGE_REPORT_MAIL_TLS"`
	} `yaml:"mail"`
	Metrics struct {
		PushgatewayURL string `yaml:"pushgatewayUrl" env:"STORAGE_REPORT_PUSHGATEWAY_URL"`
		Job            string `yaml:"job" env:"STORAGE_REPORT_METRICS_JOB"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg := &Config{}
	cfg.API.URL = clients.DefaultEndpoint
	cfg.API.TimeoutSeconds = 30
	cfg.Report.CSVFile = "storage_report.csv"
	cfg.Report.RecordsCount = service.DefaultRecordsCount
	cfg.Report.PartnerFields = append([]int(nil), service.DefaultPartnerFields...)
	cfg.Report.FetchRecursively = true
	cfg.Log.ConsoleLevel = "debug"
	cfg.Log.FileLevel = "info"
	cfg.Log.File = "storage_report.txt"
	cfg.Log.Encoding = "console"
	cfg.Mail.Enabled = true
	cfg.Mail.Port = 25
	cfg.Mail.TLS = "none"
	cfg.Metrics.Job = "storage_report"
	return cfg
}

// Load reads and validates configuration. path may be empty.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read applies the file and environment over Default without validating, so
// callers can layer further overrides first.
func Read(path string) (*Config, error) {
	cfg := Default()
	if err := libconfig.LoadConfig(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.PartnerName) == "" {
		errs = append(errs, errors.New("config: api partner name required"))
	}
	if strings.TrimSpace(c.API.Username) == "" {
		errs = append(errs, errors.New("config: api username required"))
	}
	if c.API.Password == "" {
		errs = append(errs, errors.New("config: api password required"))
	}
	if strings.TrimSpace(c.Report.CSVFile) == "" {
		errs = append(errs, errors.New("config: report csv file required"))
	}
	if c.Mail.Enabled {
		if strings.TrimSpace(c.Mail.Server) == "" {
			errs = append(errs, errors.New("config: mail server required"))
		}
		if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
			errs = append(errs, errors.New("config: mail port must be 1-65535"))
		}
		if strings.TrimSpace(c.Mail.User) == "" {
			errs = append(errs, errors.New("config: mail user required"))
		}
		if strings.TrimSpace(c.Mail.Destination) == "" {
			errs = append(errs, errors.New("config: mail destination required"))
		}
	}
	return errors.Join(errs...)
}

// APITimeout returns http client timeout.
func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// TransportOptions maps the api section onto the RPC transport options.
func (c *Config) TransportOptions() clients.TransportOptions {
	return clients.TransportOptions{
		ProxyURL:           c.API.ProxyURL,
		CAFile:             c.API.CAFile,
		InsecureSkipVerify: c.API.InsecureSkipVerify,
		Timeout:            c.APITimeout(),
		Headers:            c.API.Headers,
	}
}

// ReportOptions maps the report section onto the builder options.
func (c *Config) ReportOptions() service.ReportOptions {
	return service.ReportOptions{
		CustomerFilter:   c.Report.CustomerFilter,
		AccountFilter:    c.Report.AccountFilter,
		RecordsCount:     c.Report.RecordsCount,
		PartnerFields:    c.Report.PartnerFields,
		FetchRecursively: c.Report.FetchRecursively,
	}
}
