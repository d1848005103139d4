// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/imagestore"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TutorHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, image_store, etc.
//   - Environment variables: TUTORHUB_MONGO_URI, TUTORHUB_IMAGE_STORE, etc.
//   - Command-line flags: --mongo_uri, --image_store, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (ignored when mongo_host is set)"},
	{Name: "mongo_user", Default: "", Desc: "MongoDB user for an SRV connection"},
	{Name: "mongo_password", Default: "", Desc: "MongoDB password for an SRV connection"},
	{Name: "mongo_host", Default: "", Desc: "MongoDB SRV host (e.g. cluster0.abcde.mongodb.net)"},
	{Name: "mongo_app_name", Default: "tutorhub", Desc: "appName reported to MongoDB"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},

	// Collections
	{Name: "tutors_db", Default: "TutorsDB", Desc: "Database holding tutor listings"},
	{Name: "tutors_collection", Default: "Tutors", Desc: "Collection holding tutor listings"},
	{Name: "confirm_db", Default: "confirmDB", Desc: "Database holding confirmed tutors"},
	{Name: "confirm_collection", Default: "confirmTutors", Desc: "Collection holding confirmed tutors"},
	{Name: "users_db", Default: "userDB", Desc: "Database holding users"},
	{Name: "users_collection", Default: "users", Desc: "Collection holding users"},
	{Name: "students_db", Default: "studentDB", Desc: "Database holding students"},
	{Name: "students_collection", Default: "students", Desc: "Collection holding students"},

	// HTTP
	{Name: "api_prefix", Default: "", Desc: "Path prefix for the resource routes (e.g. /api)"},
	{Name: "cors_origins", Default: "*", Desc: "Comma-separated allowed CORS origins"},

	// Images
	{Name: "image_store", Default: imagestore.KindCloudinary, Desc: "Image store: 'cloudinary', 's3' or 'local'"},
	{Name: "tutor_image_required", Default: true, Desc: "Reject tutor creation without an image file"},
	{Name: "max_upload_bytes", Default: 10 << 20, Desc: "Maximum multipart body size for tutor creation"},
	{Name: "upload_rate_limit", Default: 30, Desc: "Tutor creations allowed per client per window (0 disables)"},
	{Name: "upload_rate_window", Default: "1m", Desc: "Window for upload_rate_limit"},

	{Name: "cloudinary_cloud_name", Default: "", Desc: "Cloudinary cloud name"},
	{Name: "cloudinary_api_key", Default: "", Desc: "Cloudinary API key"},
	{Name: "cloudinary_api_secret", Default: "", Desc: "Cloudinary API secret"},
	{Name: "cloudinary_folder", Default: imagestore.DefaultCloudinaryFolder, Desc: "Cloudinary folder for tutor images"},

	{Name: "storage_local_path", Default: "./uploads", Desc: "Directory for locally stored images"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local images"},

	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "tutors/", Desc: "S3 key prefix"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "S3-compatible endpoint URL (blank for AWS)"},
	{Name: "storage_s3_access_key", Default: "", Desc: "S3 access key (blank uses the default AWS chain)"},
	{Name: "storage_s3_secret_key", Default: "", Desc: "S3 secret key"},
	{Name: "storage_s3_public_url", Default: "", Desc: "Public base URL for stored objects"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document operations"},
	{Name: "timeout_medium", Default: "30s", Desc: "Deadline for lists and image uploads"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// TUTORHUB_* environment variables and command-line flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TUTORHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoUser:        appValues.String("mongo_user"),
		MongoPassword:    appValues.String("mongo_password"),
		MongoHost:        appValues.String("mongo_host"),
		MongoAppName:     appValues.String("mongo_app_name"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		Tutors:   CollectionRef{appValues.String("tutors_db"), appValues.String("tutors_collection")},
		Confirm:  CollectionRef{appValues.String("confirm_db"), appValues.String("confirm_collection")},
		Users:    CollectionRef{appValues.String("users_db"), appValues.String("users_collection")},
		Students: CollectionRef{appValues.String("students_db"), appValues.String("students_collection")},

		APIPrefix:   normalizePrefix(appValues.String("api_prefix")),
		CORSOrigins: splitList(appValues.String("cors_origins")),

		ImageStore:         strings.ToLower(strings.TrimSpace(appValues.String("image_store"))),
		TutorImageRequired: appValues.Bool("tutor_image_required"),
		MaxUploadBytes:     int64(appValues.Int("max_upload_bytes")),
		UploadRateLimit:    appValues.Int("upload_rate_limit"),
		UploadRateWindow:   appValues.Duration("upload_rate_window", time.Minute),

		CloudinaryCloudName: appValues.String("cloudinary_cloud_name"),
		CloudinaryAPIKey:    appValues.String("cloudinary_api_key"),
		CloudinaryAPISecret: appValues.String("cloudinary_api_secret"),
		CloudinaryFolder:    appValues.String("cloudinary_folder"),

		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageS3Endpoint:  appValues.String("storage_s3_endpoint"),
		StorageS3AccessKey: appValues.String("storage_s3_access_key"),
		StorageS3SecretKey: appValues.String("storage_s3_secret_key"),
		StorageS3PublicURL: appValues.String("storage_s3_public_url"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It catches a bad MongoDB URI, an unknown image store and a remote store
// missing its credentials before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	uri, err := mongoURI(appCfg)
	if err != nil {
		return err
	}
	if err := wafflemongo.ValidateURI(uri); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	for name, ref := range appCfg.collections() {
		if ref.Database == "" || ref.Collection == "" {
			return fmt.Errorf("%s: database and collection names are required", name)
		}
	}

	switch appCfg.ImageStore {
	case imagestore.KindCloudinary:
		if appCfg.CloudinaryCloudName == "" || appCfg.CloudinaryAPIKey == "" || appCfg.CloudinaryAPISecret == "" {
			return fmt.Errorf("image_store=cloudinary requires cloudinary_cloud_name, cloudinary_api_key and cloudinary_api_secret")
		}
	case imagestore.KindS3:
		if appCfg.StorageS3Bucket == "" {
			return fmt.Errorf("image_store=s3 requires storage_s3_bucket")
		}
		if appCfg.StorageS3Region == "" && appCfg.StorageS3Endpoint == "" {
			return fmt.Errorf("image_store=s3 requires storage_s3_region or storage_s3_endpoint")
		}
		if (appCfg.StorageS3AccessKey == "") != (appCfg.StorageS3SecretKey == "") {
			return fmt.Errorf("storage_s3_access_key and storage_s3_secret_key must be set together")
		}
	case imagestore.KindLocal:
		if appCfg.StorageLocalPath == "" {
			return fmt.Errorf("image_store=local requires storage_local_path")
		}
	default:
		return fmt.Errorf("%w: %q", imagestore.ErrUnknownKind, appCfg.ImageStore)
	}

	if appCfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if appCfg.UploadRateLimit < 0 {
		return fmt.Errorf("upload_rate_limit must not be negative")
	}
	if appCfg.UploadRateLimit > 0 && appCfg.UploadRateWindow <= 0 {
		return fmt.Errorf("upload_rate_window must be positive when upload_rate_limit is set")
	}
	return nil
}

// mongoURI returns the connection string the client is built from.
func mongoURI(appCfg AppConfig) (string, error) {
	if appCfg.MongoHost == "" {
		if appCfg.MongoURI == "" {
			return "", fmt.Errorf("either mongo_uri or mongo_host is required")
		}
		return appCfg.MongoURI, nil
	}
	if appCfg.MongoUser == "" || appCfg.MongoPassword == "" {
		return "", fmt.Errorf("mongo_host requires mongo_user and mongo_password")
	}

	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(appCfg.MongoUser, appCfg.MongoPassword),
		Host:   appCfg.MongoHost,
		Path:   "/",
	}
	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if appCfg.MongoAppName != "" {
		q.Set("appName", appCfg.MongoAppName)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// collections maps each record family to its configured location.
func (c AppConfig) collections() map[string]CollectionRef {
	return map[string]CollectionRef{
		"tutors":   c.Tutors,
		"confirm":  c.Confirm,
		"users":    c.Users,
		"students": c.Students,
	}
}

// normalizePrefix turns "api", "/api/" and "/api" into "/api"; "" and "/"
// become "".
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// imageStoreConfig maps app config onto imagestore.Config.
func (c AppConfig) imageStoreConfig() imagestore.Config {
	return imagestore.Config{
		Kind:                c.ImageStore,
		CloudinaryCloudName: c.CloudinaryCloudName,
		CloudinaryAPIKey:    c.CloudinaryAPIKey,
		CloudinaryAPISecret: c.CloudinaryAPISecret,
		CloudinaryFolder:    c.CloudinaryFolder,
		LocalPath:           c.StorageLocalPath,
		LocalURL:            c.StorageLocalURL,
		S3Region:            c.StorageS3Region,
		S3Bucket:            c.StorageS3Bucket,
		S3Prefix:            c.StorageS3Prefix,
		S3Endpoint:          c.StorageS3Endpoint,
		S3AccessKey:         c.StorageS3AccessKey,
		S3SecretKey:         c.StorageS3SecretKey,
		S3PublicURL:         c.StorageS3PublicURL,
	}
}
