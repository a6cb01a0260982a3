package bots

import (
	"math/rand"

	"sightline/arena"
	"sightline/common"
	"sightline/ecs"
	"sightline/session"
)

// Director generates player life-cycle traffic from the arena's churn
// tuning: roster bots join on their schedule, then randomly leave and
// rejoin, swap teams, and die. A zero interval disables that churn kind.
type Director struct {
	session *session.Manager
	def     *arena.Definition
	rng     *rand.Rand

	joins   []scheduledJoin
	rejoins []scheduledJoin

	leaveTimer int
	swapTimer  int
	killTimer  int
}

type scheduledJoin struct {
	bot    arena.Bot
	frames int
}

func NewDirector(s *session.Manager, def *arena.Definition, rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	d := &Director{
		session:    s,
		def:        def,
		rng:        rng,
		leaveTimer: common.Frames(def.Churn.LeaveInterval),
		swapTimer:  common.Frames(def.Churn.SwapInterval),
		killTimer:  common.Frames(def.Churn.KillInterval),
	}
	for _, b := range def.Bots {
		d.joins = append(d.joins, scheduledJoin{bot: b, frames: common.Frames(b.JoinDelay)})
	}
	return d
}

func (d *Director) Update(w *ecs.World) {
	if d == nil || d.session == nil {
		return
	}

	d.joins = d.tickJoins(d.joins)
	d.rejoins = d.tickJoins(d.rejoins)

	if fired := tick(&d.leaveTimer, d.def.Churn.LeaveInterval); fired {
		if p, ok := d.randomBot(); ok {
			bot := arena.Bot{Name: p.Name, Team: p.Team, Script: p.Script}
			d.session.Leave(p.ID)
			d.rejoins = append(d.rejoins, scheduledJoin{bot: bot, frames: common.Frames(d.def.Churn.RejoinDelay)})
		}
	}

	if fired := tick(&d.swapTimer, d.def.Churn.SwapInterval); fired {
		if p, ok := d.randomBot(); ok {
			if other, ok := d.def.OtherTeam(p.Team); ok {
				d.session.SetTeam(p.ID, other)
			}
		}
	}

	if fired := tick(&d.killTimer, d.def.Churn.KillInterval); fired {
		if p, ok := d.randomBot(); ok {
			d.session.Kill(p.ID)
		}
	}
}

func (d *Director) tickJoins(pending []scheduledJoin) []scheduledJoin {
	remaining := pending[:0]
	for _, j := range pending {
		j.frames--
		if j.frames > 0 {
			remaining = append(remaining, j)
			continue
		}
		d.session.Join(j.bot.Name, j.bot.Team, j.bot.Script)
	}
	return remaining
}

// randomBot picks a random live remote player.
func (d *Director) randomBot() (*session.Player, bool) {
	var candidates []*session.Player
	for _, p := range d.session.Players() {
		if !p.Local {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[d.rng.Intn(len(candidates))], true
}

// tick counts a repeating timer down, returning true on fire. A
// non-positive interval disables the timer.
func tick(timer *int, intervalSeconds float64) bool {
	if intervalSeconds <= 0 {
		return false
	}
	*timer--
	if *timer > 0 {
		return false
	}
	*timer = common.Frames(intervalSeconds)
	return true
}
