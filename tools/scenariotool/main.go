package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/engine"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
	"github.com/ChrisWaycott/mini-chalice/pkg/scenario"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	sc, cfg, world, err := load(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid scenario: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		fmt.Printf("%s: %dx%d, %d units, tiles_per_ap=%d ap_per_turn=%d\n",
			sc.Name, world.Width, world.Height, len(world.Roster), cfg.TilesPerAP, cfg.APPerTurn)
	case "render":
		fmt.Print(render(world, nil))
	case "range":
		if len(os.Args) < 4 {
			fmt.Println("Usage: scenariotool range <file> <unit_id>")
			return
		}
		id, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Printf("Invalid unit id: %v\n", err)
			return
		}
		u := world.Unit(domain.UnitID(id))
		if u == nil {
			fmt.Printf("Unit %d not found\n", id)
			return
		}
		r := systems.ComputeMovementRange(world, u, cfg.TilesPerAP)
		fmt.Print(render(world, r))
		fmt.Printf("%d reachable tiles\n", r.Len())
	default:
		printHelp()
	}
}

func load(path string) (*scenario.File, engine.Config, *domain.GridWorld, error) {
	cfg := engine.NewConfig()
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, cfg, nil, err
	}
	if err := sc.ApplyRules(&cfg); err != nil {
		return nil, cfg, nil, err
	}
	world, err := sc.Build(cfg.APPerTurn)
	if err != nil {
		return nil, cfg, nil, err
	}
	return sc, cfg, world, nil
}

// render рисует карту: '@' игрок, 'Z' враг, цифра - цена в AP.
func render(w *domain.GridWorld, r *systems.MovementRange) string {
	var b strings.Builder
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			ch := byte('.')
			if !w.IsWalkable(x, y) {
				ch = '#'
			}
			if r != nil {
				if e, ok := r.Entry(x, y); ok {
					ch = byte('0' + e.APCost)
				}
			}
			if u := w.UnitAt(x, y); u != nil {
				ch = 'Z'
				if u.Faction == domain.FactionPlayer {
					ch = '@'
				}
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func printHelp() {
	fmt.Println(`Scenario Utility - проверка файлов сценариев
Commands:
  check <file>             - разобрать сценарий и применить правила
  render <file>            - нарисовать карту с юнитами
  range <file> <unit_id>   - зона досягаемости юнита с ценой в AP`)
}
