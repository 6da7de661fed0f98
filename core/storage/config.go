package storage

// Config holds configuration for the object storage used for run reports
// and the receivables snapshot.
type Config struct {
	// Enabled turns on report upload and snapshot fallback.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding reports and snapshots.
	Bucket string `mapstructure:"bucket" default:"ar-sync"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ReportPrefix is the key prefix under which run reports are written.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/ar-sync"`
	// SnapshotObject is the receivables snapshot read when NetSuite returns no rows.
	// Empty disables the fallback.
	SnapshotObject string `mapstructure:"snapshot_object" default:""`
}
