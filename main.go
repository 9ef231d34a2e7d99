package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/levels"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode: physics overlay and prefab hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", fmt.Sprintf("start level, one of %v", levels.All()))
	seed := flag.Uint64("seed", 0, "random seed for sound variants (0 uses game.yaml)")
	bounded := flag.Bool("bounded", false, "stop at the last level instead of cycling")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("unicycle")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(options{
		level:   *levelName,
		debug:   *debug,
		seed:    *seed,
		bounded: *bounded,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
