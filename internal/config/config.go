// Package config loads heartgate settings from defaults, an optional YAML
// file, an optional .env file and HEARTGATE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HEARTGATE_"

// Config holds all settings for one run of the card.
type Config struct {
	Secret         string        `yaml:"secret" env:"SECRET"`
	ImageDir       string        `yaml:"image_dir" env:"IMAGE_DIR"`
	ImagePattern   string        `yaml:"image_pattern" env:"IMAGE_PATTERN"`
	PlaceholderURL string        `yaml:"placeholder_url" env:"PLACEHOLDER_URL"`
	Slots          int           `yaml:"slots" env:"SLOTS"`
	ErrorFlash     time.Duration `yaml:"error_flash" env:"ERROR_FLASH"`
	ScaleStep      float64       `yaml:"scale_step" env:"SCALE_STEP"`
	MarginX        int           `yaml:"margin_x" env:"MARGIN_X"`
	MarginY        int           `yaml:"margin_y" env:"MARGIN_Y"`
	WatchImages    bool          `yaml:"watch_images" env:"WATCH_IMAGES"`
	Burst          Burst         `yaml:"burst" envPrefix:"BURST_"`
	Text           Text          `yaml:"text" envPrefix:"TEXT_"`
}

// Burst configures the acceptance particle burst.
type Burst struct {
	Particles int      `yaml:"particles" env:"PARTICLES"`
	Spread    float64  `yaml:"spread" env:"SPREAD"`
	OriginY   float64  `yaml:"origin_y" env:"ORIGIN_Y"`
	Colors    []string `yaml:"colors" env:"COLORS" envSeparator:","`
}

// Text holds the user-facing copy.
type Text struct {
	LockTitle     string `yaml:"lock_title" env:"LOCK_TITLE"`
	LockPrompt    string `yaml:"lock_prompt" env:"LOCK_PROMPT"`
	Placeholder   string `yaml:"placeholder" env:"PLACEHOLDER"`
	Unlock        string `yaml:"unlock" env:"UNLOCK"`
	Question      string `yaml:"question" env:"QUESTION"`
	Yes           string `yaml:"yes" env:"YES"`
	No            string `yaml:"no" env:"NO"`
	GalleryTitle  string `yaml:"gallery_title" env:"GALLERY_TITLE"`
	GallerySubtle string `yaml:"gallery_subtitle" env:"GALLERY_SUBTITLE"`
	Back          string `yaml:"back" env:"BACK"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Secret:         "22.02",
		ImageDir:       "images",
		ImagePattern:   "photo%d.jpg",
		PlaceholderURL: "https://picsum.photos/seed/%d/800/800",
		Slots:          8,
		ErrorFlash:     500 * time.Millisecond,
		ScaleStep:      0.2,
		MarginX:        8,
		MarginY:        2,
		WatchImages:    true,
		Burst: Burst{
			Particles: 150,
			Spread:    70,
			OriginY:   0.6,
			Colors:    []string{"#ff0000", "#ff69b4", "#ff1493"},
		},
		Text: Text{
			LockTitle:     "Nasza Tajemnica",
			LockPrompt:    "Wpisz datę, która wszystko zmieniła...",
			Placeholder:   "DD.MM",
			Unlock:        "Otwórz Serce",
			Question:      "Czy zgadzasz się być dalej ze mną?",
			Yes:           "TAK! ♥",
			No:            "Nie...",
			GalleryTitle:  "Nasze Wspomnienia",
			GallerySubtle: "Każda chwila z Tobą jest wyjątkowa...",
			Back:          "Wróć do pytania",
		},
	}
}

// Load builds a Config. path names an optional YAML file; an empty path or a
// missing file keeps the defaults. A .env file in the working directory is
// loaded if present, then HEARTGATE_* variables override the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// Missing .env is normal; real variables still apply.
	_ = godotenv.Load()

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Secret == "":
		return errors.New("config: secret must not be empty")
	case c.Slots < 1:
		return fmt.Errorf("config: slots must be at least 1, got %d", c.Slots)
	case c.ErrorFlash <= 0:
		return fmt.Errorf("config: error_flash must be positive, got %s", c.ErrorFlash)
	case c.ScaleStep <= 0:
		return fmt.Errorf("config: scale_step must be positive, got %g", c.ScaleStep)
	case c.MarginX < 0 || c.MarginY < 0:
		return fmt.Errorf("config: margins must not be negative, got %d,%d", c.MarginX, c.MarginY)
	case !strings.Contains(c.ImagePattern, "%d"):
		return fmt.Errorf("config: image_pattern %q needs a %%d verb", c.ImagePattern)
	case !strings.Contains(c.PlaceholderURL, "%d"):
		return fmt.Errorf("config: placeholder_url %q needs a %%d verb", c.PlaceholderURL)
	case c.Burst.Particles < 1:
		return fmt.Errorf("config: burst.particles must be at least 1, got %d", c.Burst.Particles)
	case len(c.Burst.Colors) == 0:
		return errors.New("config: burst.colors must not be empty")
	}
	return nil
}
