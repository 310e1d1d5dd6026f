package config

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendRedis  = "redis"
)

const (
	EnvRedisURL  = "REWEAR_REDIS_URL"
	EnvRedisAddr = "REWEAR_REDIS_ADDR"
)
