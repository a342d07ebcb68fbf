package storage

// profileKey is where the player profile lives in the kv area.
const profileKey = "profile"

// Profile is the persistent player progression shared by all modes. Stored
// as a JSON document so fields can be added without schema migrations.
type Profile struct {
	Name     string `json:"name"`
	XP       int    `json:"xp"`
	Currency int    `json:"currency"`

	// Equipment unlocks, spent currency.
	Piercing      bool   `json:"piercing"`
	Explosive     bool   `json:"explosive"`
	Chain         bool   `json:"chain"`
	PassiveMagnet bool   `json:"passive_magnet"`
	WeaponMode    string `json:"weapon_mode"`
}

// LoadProfile returns the stored profile, or a fresh one when nothing is
// stored yet or the stored document is corrupt.
func (s *Store) LoadProfile() Profile {
	p := Profile{Name: "player"}
	s.GetJSON(profileKey, &p)
	return p
}

// SaveProfile persists the profile. Failures are logged, not surfaced.
func (s *Store) SaveProfile(p Profile) {
	s.PutJSON(profileKey, p)
}
