// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (TUTORHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS and log level; everything the tutoring backend itself
// needs lives here.
type AppConfig struct {
	// MongoDB connection. MongoURI is used unless MongoHost is set, in
	// which case an SRV URI is built from MongoUser/MongoPassword/MongoHost.
	MongoURI         string
	MongoUser        string
	MongoPassword    string
	MongoHost        string
	MongoAppName     string
	MongoMaxPoolSize uint64

	// Database and collection per record family.
	Tutors   CollectionRef
	Confirm  CollectionRef
	Users    CollectionRef
	Students CollectionRef

	// HTTP surface
	APIPrefix   string   // e.g. "/api"; blank mounts resources at the root
	CORSOrigins []string // allowed origins; "*" allows all

	// Image storage
	ImageStore         string // "cloudinary", "s3" or "local"
	TutorImageRequired bool   // reject tutor creation without a file part
	MaxUploadBytes     int64
	UploadRateLimit    int // tutor creations per client per window; 0 disables
	UploadRateWindow   time.Duration

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	StorageLocalPath string // directory local images are written to
	StorageLocalURL  string // URL prefix local images are served under

	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageS3Endpoint  string // S3-compatible endpoint (MinIO etc.); blank for AWS
	StorageS3AccessKey string
	StorageS3SecretKey string
	StorageS3PublicURL string

	// Request deadlines
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}

// CollectionRef names one collection inside one database.
type CollectionRef struct {
	Database   string
	Collection string
}
