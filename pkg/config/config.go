package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	JWT     JWTConfig
	Export  ExportConfig
	Report  ReportConfig
	Redis   RedisConfig
	DB      DBConfig
	Email   EmailConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	DefaultLang string // vi | en
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig URLs de las dos APIs que orquesta la consola.
type BackendConfig struct {
	WarehouseURL string // API_URL: servicio REST local de bodega
	ERPURL       string // API_ERP_URL: servicio REST del ERP
	Timeout      time.Duration
}

// JWTConfig configuración del token de sesión.
// Si Secret está vacío el token solo se decodifica (sin verificar firma), igual que la consola original.
type JWTConfig struct {
	Secret string
}

// ExportConfig parámetros del flujo de salida de stock.
type ExportConfig struct {
	PreviewTTL         time.Duration // cuenta regresiva de la vista previa (300 s)
	Compensate         bool          // ejecutar compensaciones ante fallo parcial
	UpdateERPQuantity  bool          // descontar cantidad en el ERP como paso del commit
	OrderIDPrefix      string
	OrderIDMaxAttempts int
	OrderIDRetryRPS    float64
}

// ReportConfig parámetros de reportes.
type ReportConfig struct {
	UndoWindow time.Duration
}

// RedisConfig conexión opcional para el almacén de borradores.
// Addr vacío = almacén en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DBConfig configuración de PostgreSQL para el diario de commits.
// Si DatabaseURL y Host están vacíos el diario queda en memoria.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si hay una base configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// EmailConfig notificación de salidas de stock.
type EmailConfig struct {
	Provider string // emailjs | smtp | none

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSEndpoint   string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPTo       string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, API_ERP_URL, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "warehouse-web"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			DefaultLang: getString(v, "DEFAULT_LANG", "vi"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			WarehouseURL: strings.TrimRight(getString(v, "API_URL", "http://localhost:3000"), "/"),
			ERPURL:       strings.TrimRight(getString(v, "API_ERP_URL", "http://localhost:4000"), "/"),
			Timeout:      time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
		},
		Export: ExportConfig{
			PreviewTTL:         time.Duration(getInt(v, "EXPORT_PREVIEW_TTL_SECONDS", 300)) * time.Second,
			Compensate:         getBool(v, "EXPORT_COMPENSATE", true),
			UpdateERPQuantity:  getBool(v, "EXPORT_UPDATE_ERP_QTY", false),
			OrderIDPrefix:      getString(v, "ORDER_ID_PREFIX", "XK"),
			OrderIDMaxAttempts: getInt(v, "ORDER_ID_MAX_ATTEMPTS", 20),
			OrderIDRetryRPS:    getFloat(v, "ORDER_ID_RETRY_RPS", 5),
		},
		Report: ReportConfig{
			UndoWindow: time.Duration(getInt(v, "UNDO_WINDOW_MINUTES", 10)) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "warehouse_web"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Email: EmailConfig{
			Provider:          strings.ToLower(getString(v, "EMAIL_PROVIDER", "none")),
			EmailJSServiceID:  getString(v, "EMAILJS_SERVICE_ID", ""),
			EmailJSTemplateID: getString(v, "EMAILJS_TEMPLATE_ID", ""),
			EmailJSPublicKey:  getString(v, "EMAILJS_PUBLIC_KEY", ""),
			EmailJSEndpoint:   getString(v, "EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
			SMTPHost:          getString(v, "SMTP_HOST", ""),
			SMTPPort:          getInt(v, "SMTP_PORT", 587),
			SMTPUser:          getString(v, "SMTP_USER", ""),
			SMTPPassword:      getString(v, "SMTP_PASSWORD", ""),
			SMTPFrom:          getString(v, "SMTP_FROM", ""),
			SMTPTo:            getString(v, "SMTP_TO", ""),
		},
	}

	if cfg.Export.PreviewTTL <= 0 {
		return nil, fmt.Errorf("config: EXPORT_PREVIEW_TTL_SECONDS debe ser positivo")
	}
	if cfg.Export.OrderIDMaxAttempts <= 0 {
		return nil, fmt.Errorf("config: ORDER_ID_MAX_ATTEMPTS debe ser positivo")
	}
	switch cfg.Email.Provider {
	case "emailjs", "smtp", "none", "":
	default:
		return nil, fmt.Errorf("config: EMAIL_PROVIDER desconocido: %q (usar emailjs|smtp|none)", cfg.Email.Provider)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
