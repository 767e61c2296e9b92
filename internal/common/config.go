package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	OCR       OCRConfig
	Dataset   DatasetConfig
	Providers ProvidersConfig
	Drugs     DrugsConfig
	RAG       RAGConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr       string
	AllowedOrigins []string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract     string
	Pdftoppm      string
	TesseractLang string
	TessdataDir   string
	DPI           int
	MaxPages      int
}

// DatasetConfig points at the insurance plan dataset (CSV or XLSX)
type DatasetConfig struct {
	Path string
}

// ProvidersConfig holds CMS provider directory configuration
type ProvidersConfig struct {
	SourceURL    string
	FetchTimeout time.Duration
}

// DrugsConfig holds openFDA drug lookup configuration
type DrugsConfig struct {
	BaseURL string
	Limit   int
	Timeout time.Duration
}

// RAGConfig holds the retrieval fallback configuration
type RAGConfig struct {
	OllamaHost     string
	Model          string
	EmbeddingModel string
	DocPaths       []string
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
	Timeout        time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Dataset: DatasetConfig{
			Path: getEnv("PLAN_DATASET_PATH", ""),
		},
		Providers: ProvidersConfig{
			SourceURL:    getEnv("CMS_PROVIDER_URL", ""),
			FetchTimeout: getEnvAsDuration("CMS_FETCH_TIMEOUT", 30*time.Second),
		},
		Drugs: DrugsConfig{
			BaseURL: getEnv("OPENFDA_BASE_URL", "https://api.fda.gov"),
			Limit:   getEnvAsInt("OPENFDA_LIMIT", 10),
			Timeout: getEnvAsDuration("OPENFDA_TIMEOUT", 10*time.Second),
		},
		RAG: RAGConfig{
			OllamaHost:     getEnv("OLLAMA_HOST", ""),
			Model:          getEnv("OLLAMA_MODEL", "phi3-mini"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "phi3-mini"),
			DocPaths:       getEnvAsList("DOCS_PATHS", nil),
			ChunkSize:      getEnvAsInt("RAG_CHUNK_SIZE", 300),
			ChunkOverlap:   getEnvAsInt("RAG_CHUNK_OVERLAP", 30),
			TopK:           getEnvAsInt("RAG_TOP_K", 3),
			Timeout:        getEnvAsDuration("RAG_TIMEOUT", 60*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
