// Package config provides configuration management for the GolemBase tools.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Chain: GolemBase RPC and WebSocket endpoints, private key
//   - Storage: S3/MinIO credentials and bucket settings for staged records
//   - Journal: MySQL connection for run history
//   - Push: batch size and entity TTL defaults
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Chain.RPCURL)
package config
