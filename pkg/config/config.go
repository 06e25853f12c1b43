package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Remote   RemoteConfig
	Fallback FallbackConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// RemoteConfig configuración del gateway remoto de facturación.
// BaseURL vacío significa sin remoto: todas las operaciones van directo al
// dataset de respaldo en memoria (modo demo).
type RemoteConfig struct {
	BaseURL      string
	Timeout      time.Duration // presupuesto por operación; excederlo cuenta como inalcanzable
	ProbeTimeout time.Duration // timeout corto del sondeo de disponibilidad (/healthz)
}

// FallbackConfig configuración del dataset de respaldo en memoria.
// La latencia simulada mantiene consistentes los estados de carga de la UI
// aunque la petición nunca salga del proceso; en tests se pone en "none".
type FallbackConfig struct {
	Latency string // "real" o "none"
}

// SimulateLatency indica si el store de respaldo debe simular latencia de red.
func (c FallbackConfig) SimulateLatency() bool {
	return c.Latency != "none"
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, REMOTE_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "caf-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Remote: RemoteConfig{
			BaseURL:      getString(v, "REMOTE_BASE_URL", "http://localhost:9090"),
			Timeout:      time.Duration(getInt(v, "REMOTE_TIMEOUT_MS", 5000)) * time.Millisecond,
			ProbeTimeout: time.Duration(getInt(v, "REMOTE_PROBE_TIMEOUT_MS", 2000)) * time.Millisecond,
		},
		Fallback: FallbackConfig{
			Latency: getString(v, "FALLBACK_LATENCY", "real"),
		},
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
