package cmd

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	JWTSecret               string
	Timezone                string
	OtpLength               string
	OtpTTLHours             string
	GeocoderBaseURL         string
	GeocoderAPIKey          string
	KafkaHost               string
	KafkaNotificationsTopic string
	RedisAddr               string
	OutboxBatchSize         string
}
