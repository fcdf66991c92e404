package config

// EnvPrefix is empty because every field carries its fully qualified
// WEDELITE_* variable name in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "WEDELITE_DB_DSN"
	EnvDBHost = "WEDELITE_DB_HOST"
	EnvDBUser = "WEDELITE_DB_USER"
	EnvDBName = "WEDELITE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
