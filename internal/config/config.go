package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	SiteURL     string `env:"PUBLIC_SITE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	Stripe   Stripe   `envPrefix:"STRIPE_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Telegram Telegram `envPrefix:"TELEGRAM_"`
	Cron     Cron     `envPrefix:"CRON_"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type SMTP struct {
	Host    string `env:"HOST"`
	Port    int    `env:"PORT" envDefault:"587"`
	User    string `env:"USER"`
	Pass    string `env:"PASS"`
	Secure  bool   `env:"SECURE"`
	From    string `env:"MAIL_FROM"`
	ReplyTo string `env:"MAIL_REPLY_TO"`
}

type Telegram struct {
	BotToken string `env:"BOT_TOKEN"`
	ChatID   int64  `env:"CHAT_ID"`
}

type Cron struct {
	// empty secret leaves the sweep endpoint open
	Secret string `env:"SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
