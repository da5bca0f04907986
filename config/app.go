package config

type App struct {
	Port                 string `env:"APP_PORT" default:"8080"`
	DatabaseURL          string `env:"DATABASE_URL,required"`
	RedisAddr            string `env:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	JWTSecret            string `env:"JWT_SECRET" default:"local_dev_secret"`
	InvoiceAPIKey        string `env:"INVOICE_API_KEY"`
	InvoiceBaseURL       string `env:"INVOICE_BASE_URL" default:"https://api.xendit.co"`
	InvoiceCallbackToken string `env:"INVOICE_CALLBACK_TOKEN"`
	Env                  string `env:"APP_ENV" default:"dev"`
}
