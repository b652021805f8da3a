// Package config reads the pipeline's configuration from the environment,
// with a .env file loaded first when one is present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults for the optional parts of the environment surface.
const (
	DefaultMenuURL          = "https://www.sfusd.edu/services/health-wellness/nutrition-school-meals/menus"
	DefaultLinkLabel        = "Revolution Foods Hot & Cold Lunch Menu"
	DefaultDataDir          = "data"
	DefaultParser           = "gemini"
	DefaultCalendarEntity   = "calendar.lunch"
	DefaultLedgerCollection = "lunch-menu-publishes"
)

// Config holds everything the pipeline reads from the environment.
type Config struct {
	MenuURL   string // MENU_URL: the district's menus page
	LinkLabel string // MENU_LINK_LABEL: provider label the menu link must carry
	DataDir   string // DATA_DIR: local artifact directory

	Parser       string // MENU_PARSER: "gemini" or "openai"
	OpenAIKey    string // OPENAI_API_KEY
	GoogleAPIKey string // GOOGLE_API_KEY

	HomeAssistantURL   string // HOMEASSISTANT_URL
	HomeAssistantToken string // HOMEASSISTANT_TOKEN
	CalendarEntity     string // CALENDAR_ENTITY
	AllDayEvents       bool   // ALL_DAY_EVENTS: all-day events instead of 11:00-12:00

	ForceDownload bool // FORCE_DOWNLOAD: re-download even if the PDF exists
	ForceParse    bool // FORCE_PARSE: re-parse even if the record exists
	ForcePublish  bool // FORCE_PUBLISH: publish even if the ledger says done

	RenderJS   bool   // RENDER_JS: fetch the menus page through headless Chrome
	ChromePath string // CHROME_PATH: Chrome binary for rendered fetches

	GCSBucket        string // GCS_BUCKET: store artifacts in GCS instead of DATA_DIR
	GCPProject       string // GCP_PROJECT_ID: keep the publish ledger in Firestore
	LedgerCollection string // FIRESTORE_COLLECTION

	TargetMonth string // TARGET_MONTH: English month name, empty = current
	TargetYear  int    // TARGET_YEAR: empty = current
}

// Load reads the environment into a Config. Missing keys fall back to
// defaults; required keys are validated by the component that needs them,
// not here, so read-only invocations stay usable without credentials.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		MenuURL:   getEnv("MENU_URL", DefaultMenuURL),
		LinkLabel: getEnv("MENU_LINK_LABEL", DefaultLinkLabel),
		DataDir:   getEnv("DATA_DIR", DefaultDataDir),

		Parser:       strings.ToLower(getEnv("MENU_PARSER", DefaultParser)),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),

		HomeAssistantURL:   os.Getenv("HOMEASSISTANT_URL"),
		HomeAssistantToken: os.Getenv("HOMEASSISTANT_TOKEN"),
		CalendarEntity:     getEnv("CALENDAR_ENTITY", DefaultCalendarEntity),
		AllDayEvents:       getBool("ALL_DAY_EVENTS"),

		ForceDownload: getBool("FORCE_DOWNLOAD"),
		ForceParse:    getBool("FORCE_PARSE"),
		ForcePublish:  getBool("FORCE_PUBLISH"),

		RenderJS:   getBool("RENDER_JS"),
		ChromePath: os.Getenv("CHROME_PATH"),

		GCSBucket:        os.Getenv("GCS_BUCKET"),
		GCPProject:       os.Getenv("GCP_PROJECT_ID"),
		LedgerCollection: getEnv("FIRESTORE_COLLECTION", DefaultLedgerCollection),

		TargetMonth: os.Getenv("TARGET_MONTH"),
		TargetYear:  getInt("TARGET_YEAR"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func getInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}
