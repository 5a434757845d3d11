package config

import (
	"errors"
	"flag"
	"net"
	"os"
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

// ParseFlags parses the server flags from the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (postgres or sqlite)
//	-f blob storage directory
//	-c/-config json file path with configs
//	-secret-key secret the signing keys are derived from
//	-token-issuer token issuer name
//	-token-ttl layer URL lifetime (e.g., "5m", "20m")
//	-allow-original-layer serve layer 0 through the delivery gate
//	-bleed-passes edge bleed passes for split layers
//	-max-upload-size upload size limit in bytes
//	-public-base-url absolute prefix for layer URLs
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var filesDir, databaseDSN, databaseDriver string
	var jsonConfigPath string
	var secretKey, tokenIssuer, publicBaseURL string
	var tokenTTL, requestTimeout time.Duration
	var allowOriginal bool
	var bleedPasses int
	var maxUploadSize int64

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&filesDir, "f", "", "Blob storage directory")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver: postgres or sqlite")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Secret key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenTTL, "token-ttl", 0, "Layer URL lifetime (e.g., 5m, 20m)")
	fs.BoolVar(&allowOriginal, "allow-original-layer", false, "Serve the untouched source through signed URLs")
	fs.IntVar(&bleedPasses, "bleed-passes", 0, "Edge bleed passes for split layers, negative disables")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Upload size limit in bytes")
	fs.StringVar(&publicBaseURL, "public-base-url", "", "Absolute prefix for layer URLs")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SecretKey:          secretKey,
			TokenIssuer:        tokenIssuer,
			TokenTTL:           tokenTTL,
			AllowOriginalLayer: allowOriginal,
			BleedPasses:        bleedPasses,
			MaxUploadSize:      maxUploadSize,
			PublicBaseURL:      publicBaseURL,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN, Driver: databaseDriver},
			Files: Files{Dir: filesDir},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
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
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
