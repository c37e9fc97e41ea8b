package scenario

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/engine"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScenario []byte

const (
	TileFloor    = '.'
	TileObstacle = '#'
)

// UnitSpec - юнит в файле сценария. Пустые поля берутся из архетипа.
type UnitSpec struct {
	Name      string `yaml:"name"`
	Archetype string `yaml:"archetype"`
	Faction   string `yaml:"faction"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	HP        int    `yaml:"hp"`
	Attack    int    `yaml:"attack"`
	Vision    int    `yaml:"vision"`
}

// File - сценарий: ASCII-карта, юниты и переопределения правил.
type File struct {
	Name  string     `yaml:"name"`
	Map   []string   `yaml:"map"`
	Units []UnitSpec `yaml:"units"`

	// Rules декодируется поверх engine.Config, поэтому хранится сырым узлом
	Rules yaml.Node `yaml:"rules"`
}

// Parse разбирает YAML сценария.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(f.Map) == 0 {
		return nil, fmt.Errorf("scenario %q: map is empty", f.Name)
	}
	width := len(f.Map[0])
	for y, row := range f.Map {
		if len(row) != width {
			return nil, fmt.Errorf("scenario %q: row %d has width %d, want %d", f.Name, y, len(row), width)
		}
		if i := strings.IndexFunc(row, func(r rune) bool { return r != TileFloor && r != TileObstacle }); i >= 0 {
			return nil, fmt.Errorf("scenario %q: unknown tile %q at (%d,%d)", f.Name, row[i], i, y)
		}
	}
	return &f, nil
}

// Load читает сценарий с диска.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Default - встроенный сценарий.
func Default() *File {
	f, err := Parse(defaultScenario)
	if err != nil {
		panic("embedded scenario is broken: " + err.Error())
	}
	return f
}

// ApplyRules переопределяет поля cfg значениями из блока rules.
func (f *File) ApplyRules(cfg *engine.Config) error {
	if f.Rules.Kind == 0 {
		return nil
	}
	if err := f.Rules.Decode(cfg); err != nil {
		return fmt.Errorf("scenario %q rules: %w", f.Name, err)
	}
	return cfg.Validate()
}

// Build собирает мир: рельеф из карты, юниты из архетипов.
func (f *File) Build(apPerTurn int) (*domain.GridWorld, error) {
	height := len(f.Map)
	width := len(f.Map[0])
	w := domain.NewGridWorld(width, height)

	// 1. Рельеф
	for y, row := range f.Map {
		for x, r := range row {
			if r == TileObstacle {
				w.SetWalkable(x, y, false)
			}
		}
	}

	// 2. Юниты
	for i, spec := range f.Units {
		arch, ok := Archetypes[strings.ToLower(spec.Archetype)]
		if !ok {
			return nil, fmt.Errorf("unit #%d: unknown archetype %q", i, spec.Archetype)
		}
		if spec.Faction != "" {
			arch.Faction = domain.ParseFaction(spec.Faction)
			if arch.Faction == domain.FactionUnknown {
				return nil, fmt.Errorf("unit #%d: unknown faction %q", i, spec.Faction)
			}
		}
		if spec.HP > 0 {
			arch.HP = spec.HP
		}
		if spec.Attack > 0 {
			arch.Attack = spec.Attack
		}
		if spec.Vision > 0 {
			arch.Vision = spec.Vision
		}

		if !w.IsWalkable(spec.X, spec.Y) {
			return nil, fmt.Errorf("unit #%d at (%d,%d): tile is not walkable", i, spec.X, spec.Y)
		}

		u := arch.Spawn(domain.Position{X: spec.X, Y: spec.Y}, apPerTurn)
		u.Archetype = strings.ToLower(spec.Archetype)
		if spec.Name != "" {
			u.Name = spec.Name
		}
		if _, err := w.AddUnit(u); err != nil {
			return nil, fmt.Errorf("unit #%d: %w", i, err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scenario",
		"scenario":  f.Name,
		"width":     width,
		"height":    height,
		"units":     len(f.Units),
	}).Info("Scenario built")
	return w, nil
}
