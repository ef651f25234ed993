// Package config provides configuration management for id-check.
//
// It uses Viper to load configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, upstream URL, shutdown timeout
//   - Log: Logging level and format
//   - IDCheck: Source location, guard mode and identifier header
//   - Storage: S3/MinIO credentials for s3:// sources
//   - Database: MySQL/SQLite connection for db:// sources
//   - Redis: Control channel address and name
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.IDCheck.Path) // IDCHECK_PATH
package config
