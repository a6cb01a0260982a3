// arenacheck validates an arena definition and prints its roster, so
// arena edits can be checked without launching the client.
//
// Usage: arenacheck [-v] [path]
//
// With no path the embedded default arena is checked.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"sightline/arena"
	_ "sightline/bots" // registers the known bot scripts
)

func main() {
	verbose := flag.Bool("v", false, "print walls and churn settings too")
	flag.Parse()

	path := flag.Arg(0)
	def, err := arena.LoadFile(path)
	if err != nil {
		log.Fatalf("arenacheck: %v", err)
	}

	fmt.Printf("arena %q: %gx%g, %d teams, %d bots\n", def.Name, def.Width, def.Height, len(def.Teams), len(def.Bots))

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tID\tSPAWNS")
	for _, team := range def.Teams {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", team.Name, team.ID, len(team.Spawns))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "BOT\tTEAM\tSCRIPT\tJOIN DELAY")
	for _, bot := range def.Bots {
		name := fmt.Sprintf("%d", bot.Team)
		if team, ok := def.TeamByID(bot.Team); ok {
			name = team.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%gs\n", bot.Name, name, bot.Script, bot.JoinDelay)
	}
	if err := tw.Flush(); err != nil {
		log.Fatalf("arenacheck: %v", err)
	}

	if *verbose {
		fmt.Printf("\nmove speed %g, character radius %g, spawn delay %gs, respawn delay %gs\n",
			def.MoveSpeed, def.CharacterRadius, def.SpawnDelay, def.RespawnDelay)
		for _, w := range def.Walls {
			fmt.Printf("wall (%g,%g)-(%g,%g)\n", w.X1, w.Y1, w.X2, w.Y2)
		}
		fmt.Printf("churn: leave %gs, rejoin %gs, swap %gs, kill %gs\n",
			def.Churn.LeaveInterval, def.Churn.RejoinDelay, def.Churn.SwapInterval, def.Churn.KillInterval)
	}
}
