package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

const (
	FogViewerAll    = "all"
	FogViewerPlayer = "player"
)

// Config хранит правила ядра. Поля с yaml-тегами может переопределить сценарий.
type Config struct {
	TilesPerAP   int `yaml:"tiles_per_ap"`
	APPerTurn    int `yaml:"ap_per_turn"`
	MeleeDamage  int `yaml:"melee_damage"`
	AttackAPCost int `yaml:"attack_ap_cost"`

	// Длительность анимации шага: ортогональ короче диагонали
	StepDurationOrthogonal time.Duration `yaml:"step_orthogonal"`
	StepDurationDiagonal   time.Duration `yaml:"step_diagonal"`

	// Задержка между осквернением клетки и появлением нового врага
	SpawnDelay       time.Duration `yaml:"spawn_delay"`
	SpawnHPRatio     float64       `yaml:"spawn_hp_ratio"`
	SpawnAttackRatio float64       `yaml:"spawn_attack_ratio"`

	// FogViewer: "all" - туман открывают все живые юниты, "player" - только свои
	FogViewer string `yaml:"fog_viewer"`

	// StrictInvariants - паника при рассинхроне реестра и индекса (режим разработки)
	StrictInvariants bool `yaml:"strict_invariants"`
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		TilesPerAP:             domain.DefaultTilesPerAP,
		APPerTurn:              domain.DefaultAPPerTurn,
		MeleeDamage:            domain.DefaultMeleeDamage,
		AttackAPCost:           1,
		StepDurationOrthogonal: 150 * time.Millisecond,
		StepDurationDiagonal:   210 * time.Millisecond,
		SpawnDelay:             1500 * time.Millisecond,
		SpawnHPRatio:           0.5,
		SpawnAttackRatio:       0.7,
		FogViewer:              FogViewerAll,
		StrictInvariants:       true,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.TilesPerAP <= 0 {
		errs = append(errs, fmt.Errorf("tiles_per_ap must be positive, got %d", c.TilesPerAP))
	}
	if c.APPerTurn <= 0 {
		errs = append(errs, fmt.Errorf("ap_per_turn must be positive, got %d", c.APPerTurn))
	}
	if c.MeleeDamage <= 0 {
		errs = append(errs, fmt.Errorf("melee_damage must be positive, got %d", c.MeleeDamage))
	}
	if c.AttackAPCost < 0 {
		errs = append(errs, fmt.Errorf("attack_ap_cost cannot be negative, got %d", c.AttackAPCost))
	}
	if c.StepDurationOrthogonal <= 0 || c.StepDurationDiagonal <= 0 {
		errs = append(errs, errors.New("step durations must be positive"))
	}
	if c.StepDurationDiagonal < c.StepDurationOrthogonal {
		errs = append(errs, errors.New("diagonal step cannot be faster than orthogonal"))
	}
	if c.SpawnDelay <= 0 {
		errs = append(errs, errors.New("spawn_delay must be positive"))
	}
	if c.SpawnHPRatio <= 0 || c.SpawnHPRatio > 1 {
		errs = append(errs, fmt.Errorf("spawn_hp_ratio must be in (0,1], got %v", c.SpawnHPRatio))
	}
	if c.SpawnAttackRatio <= 0 {
		errs = append(errs, fmt.Errorf("spawn_attack_ratio must be positive, got %v", c.SpawnAttackRatio))
	}
	if c.FogViewer != FogViewerAll && c.FogViewer != FogViewerPlayer {
		errs = append(errs, fmt.Errorf("fog_viewer must be %q or %q, got %q", FogViewerAll, FogViewerPlayer, c.FogViewer))
	}
	return errors.Join(errs...)
}

// StepDuration - длительность анимации одного шага.
func (c Config) StepDuration(diagonal bool) time.Duration {
	if diagonal {
		return c.StepDurationDiagonal
	}
	return c.StepDurationOrthogonal
}
