package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// skinFile is the on-disk skin format: ANSI color codes or hex strings.
type skinFile struct {
	Navy   string `yaml:"navy"`
	White  string `yaml:"white"`
	Gray   string `yaml:"gray"`
	Accent string `yaml:"accent"`
	Gain   string `yaml:"gain"`
	Loss   string `yaml:"loss"`
	Warn   string `yaml:"warn"`
}

// InitializeSkin loads color overrides from <configDir>/skins/<name>.yml.
// The built-in default skin needs no file. Unset keys keep their defaults.
func InitializeSkin(name, configDir string) error {
	if name == "" || name == "default" {
		return nil
	}

	path := filepath.Join(configDir, "skins", name+".yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("skin %q: %w", name, err)
	}

	var skin skinFile
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return fmt.Errorf("skin %q: %w", name, err)
	}

	setColor(&ColorNavy, skin.Navy)
	setColor(&ColorWhite, skin.White)
	setColor(&ColorGray, skin.Gray)
	setColor(&ColorAccent, skin.Accent)
	setColor(&ColorGain, skin.Gain)
	setColor(&ColorLoss, skin.Loss)
	setColor(&ColorWarn, skin.Warn)
	applySkinColors()
	return nil
}

func setColor(dst *lipgloss.Color, value string) {
	if value != "" {
		*dst = lipgloss.Color(value)
	}
}
