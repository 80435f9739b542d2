package game

import "errors"

var (
	ErrSameTerritory = errors.New("attacker and defender are the same territory")
	ErrAlliedTarget  = errors.New("cannot attack an allied territory")
)
