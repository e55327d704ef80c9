package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	KeyLog        = "log"
	KeyLogLevel   = "logLevel"
	KeyUserAgent  = "userAgent"
	KeyRemoteAddr = "remoteAddr"
	EnvPrefix     = "htest"

	DefaultRemoteAddr = "127.0.0.1:3000"
)

var (
	v        *viper.Viper
	initOnce sync.Once
)

// Viper returns the process-wide configuration. Values come from defaults and
// from environment variables named HTEST_<KEY>, e.g. HTEST_LOGLEVEL.
func Viper() *viper.Viper {
	initOnce.Do(func() {
		v = newViper()
	})
	return v
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLog, false)
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyRemoteAddr, DefaultRemoteAddr)

	v.SetEnvPrefix(EnvPrefix)
	_ = v.BindEnv(KeyLog)        // HTEST_LOG
	_ = v.BindEnv(KeyLogLevel)   // HTEST_LOGLEVEL
	_ = v.BindEnv(KeyUserAgent)  // HTEST_USERAGENT
	_ = v.BindEnv(KeyRemoteAddr) // HTEST_REMOTEADDR
	return v
}

func LogEnabled() bool {
	return Viper().GetBool(KeyLog)
}

func LogLevel() string {
	return Viper().GetString(KeyLogLevel)
}

// UserAgent is empty unless overridden; callers fall back to their default.
func UserAgent() string {
	return strings.TrimSpace(Viper().GetString(KeyUserAgent))
}

func RemoteAddr() string {
	addr := strings.TrimSpace(Viper().GetString(KeyRemoteAddr))
	if addr == "" {
		return DefaultRemoteAddr
	}
	return addr
}
