package game

// Move is an attack order between two registry indices.
type Move struct {
	Attacker int `json:"attacker"`
	Defender int `json:"defender"`
}
