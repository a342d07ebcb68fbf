package sim

import "github.com/skyfall-arcade/skyfall/internal/registry"

// catchShape selects the catch-test geometry for a mode.
type catchShape int

const (
	catchRect catchShape = iota
	catchCircle
)

// modeParams is the per-mode tuning layered over the shared config.
type modeParams struct {
	id          string
	title       string
	description string

	shape       catchShape
	catchRadius float64 // Circle modes only

	livesOverride  int     // 0 keeps the configured lives
	spawnScale     float64 // Multiplies the spawn interval (<1 = denser)
	valueScale     float64 // Multiplies item values
	permanentChaos bool    // Chaos multipliers always on
}

var modes = []modeParams{
	{
		id:          "classic",
		title:       "Skyfall",
		description: "Catch what falls, dodge the bombs",
		shape:       catchRect,
		spawnScale:  1,
		valueScale:  1,
	},
	{
		id:          "precision",
		title:       "Skyfall Precision",
		description: "Tight circular catch zone, items pay double",
		shape:       catchCircle,
		catchRadius: 2.5,
		spawnScale:  1.2,
		valueScale:  2,
	},
	{
		id:             "frenzy",
		title:          "Skyfall Frenzy",
		description:    "Permanent chaos, dense spawns, one extra life",
		shape:          catchRect,
		spawnScale:     0.6,
		valueScale:     1,
		livesOverride:  4,
		permanentChaos: true,
	},
}

func init() {
	for _, m := range modes {
		params := m
		registry.Register(params.id, params.description, func() registry.Game {
			return NewGame(params)
		})
	}
}
