package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all server configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres:// URI or sqlite file path)
//	-c/-config json file path with configs
//	-admin-password admin panel password
//	-csrf-sign-key CSRF token signing key
//	-hash-key password digest HMAC key
//	-session-ttl rolling session lifetime (e.g., "24h")
//	-csrf-token-ttl CSRF token lifetime (e.g., "1h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-public-origin public site origin for the contact form check
//	-image-host-url image hosting service root URL
//	-image-host-key image hosting service API key
//	-image-host-folder logical upload folder on the image host
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var adminPassword string
	var csrfSignKey string
	var hashKey string
	var sessionTTL time.Duration
	var csrfTokenTTL time.Duration
	var requestTimeout time.Duration
	var publicOrigin string
	var imageHostURL string
	var imageHostKey string
	var imageHostFolder string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&adminPassword, "admin-password", "", "Admin panel password")
	flag.StringVar(&csrfSignKey, "csrf-sign-key", "", "CSRF token signing key")
	flag.StringVar(&hashKey, "hash-key", "", "Password digest HMAC key")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Rolling session lifetime (e.g., 24h)")
	flag.DurationVar(&csrfTokenTTL, "csrf-token-ttl", 0, "CSRF token lifetime (e.g., 1h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&publicOrigin, "public-origin", "", "Public site origin for the contact form check")
	flag.StringVar(&imageHostURL, "image-host-url", "", "Image hosting service root URL")
	flag.StringVar(&imageHostKey, "image-host-key", "", "Image hosting service API key")
	flag.StringVar(&imageHostFolder, "image-host-folder", "", "Logical upload folder on the image host")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AdminPassword: adminPassword,
			CSRFSignKey:   csrfSignKey,
			HashKey:       hashKey,
			SessionTTL:    sessionTTL,
			CSRFTokenTTL:  csrfTokenTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			PublicOrigin:   publicOrigin,
		},
		ImageHost: ImageHost{
			BaseURL: imageHostURL,
			APIKey:  imageHostKey,
			Folder:  imageHostFolder,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
