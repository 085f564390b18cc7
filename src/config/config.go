package config

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	Env        string
	LogLevel   string
	SideShift  SideShiftConfig
	Swap       SwapConfig
}

type SideShiftConfig struct {
	BaseURL     string
	AffiliateID string
}

type SwapConfig struct {
	// CodeOverrides maps wallet tickers whose provider method id differs
	// from the lowercase ticker. Values are already in provider casing.
	CodeOverrides map[string]string
	// LegacyAddressAssets lists tickers whose receive address must use the
	// legacy form when the wallet reports one.
	LegacyAddressAssets []string
}

// LoadFromEnv reads configuration from environment variables with fallback defaults.
// It also loads `.env` if present (for local development).
func LoadFromEnv() *Config {
	// Load .env if exists, ignore error if no file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, relying on environment variables")
	}

	listenAddr := getEnv("LISTEN_ADDR", ":8080")
	env := getEnv("ENV", "dev")
	logLevel := getEnv("LOG_LEVEL", "info")

	affiliateID := os.Getenv("SIDESHIFT_AFFILIATE_ID")
	if affiliateID == "" {
		log.Fatal("[FATAL] SIDESHIFT_AFFILIATE_ID is required")
	}

	overrides := defaultCodeOverrides()
	if raw := os.Getenv("SIDESHIFT_CODE_OVERRIDES"); raw != "" {
		overrides = map[string]string{}
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			log.Fatalf("[FATAL] Invalid SIDESHIFT_CODE_OVERRIDES json: %v", err)
		}
	}

	return &Config{
		ListenAddr: listenAddr,
		Env:        env,
		LogLevel:   logLevel,
		SideShift: SideShiftConfig{
			BaseURL:     getEnv("SIDESHIFT_BASE_URL", "https://sideshift.ai/api/v1"),
			AffiliateID: affiliateID,
		},
		Swap: SwapConfig{
			CodeOverrides:       overrides,
			LegacyAddressAssets: splitList(getEnv("LEGACY_ADDRESS_ASSETS", "BCH")),
		},
	}
}

// defaultCodeOverrides returns a fresh copy so callers never share state.
func defaultCodeOverrides() map[string]string {
	return map[string]string{
		"USDT": "usdtErc20",
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}

// helper to get env with default fallback
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
