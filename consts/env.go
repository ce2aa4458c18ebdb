package consts

const (
	Env             = "DASTCOM_ENV"               // test switches logging to development mode
	EnvPrefix       = "DASTCOM"                   // viper env prefix
	Dir             = "DASTCOM_DIR"               // database directory holding the .dat and .idx files
	HeaderCacheSize = "DASTCOM_HEADER_CACHE_SIZE" // number of cached file headers, 0 disables
	PushGateway     = "DASTCOM_PUSH_GATEWAY"      // prometheus pushgateway url
)
