package sim

import (
	"strings"
	"time"
)

// BombKind is the closed set of bomb variants.
type BombKind uint8

const (
	BombTimed BombKind = iota
	BombContact
	BombFreeze
	BombRemote
)

// BombKinds lists every kind in declaration order.
var BombKinds = [4]BombKind{BombTimed, BombContact, BombFreeze, BombRemote}

func (k BombKind) String() string {
	switch k {
	case BombTimed:
		return "Timed"
	case BombContact:
		return "Contact"
	case BombFreeze:
		return "Freeze"
	case BombRemote:
		return "Remote"
	default:
		return "Unknown"
	}
}

// ParseBombKind accepts timed/contact/freeze/remote in any case.
func ParseBombKind(s string) (BombKind, bool) {
	for _, k := range BombKinds {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return BombTimed, false
}

// bombTraits holds the static per-kind behavior switches.
type bombTraits struct {
	fused           bool // counts down once armed
	remote          bool // joins the RC queue when dropped
	freezeImmune    bool
	impactSensitive bool // detonates when a fling or drift is obstructed
}

var traits = [...]bombTraits{
	BombTimed:   {fused: true},
	BombContact: {impactSensitive: true},
	BombFreeze:  {fused: true},
	BombRemote:  {remote: true, freezeImmune: true},
}

// effectFunc applies a detonation centered on src.
type effectFunc func(r *resolver, src Coord)

var effects = [...]effectFunc{
	BombTimed:   (*resolver).blast,
	BombContact: (*resolver).blast,
	BombFreeze:  (*resolver).freeze,
	BombRemote:  (*resolver).blast,
}

// Bomb is the bomb-specific part of an entity.
type Bomb struct {
	Kind  BombKind
	Armed bool

	Timer    time.Duration // remaining fuse, valid when HasTimer
	HasTimer bool

	FrozenUntil time.Duration // sim time the freeze wears off, valid when HasFreeze
	HasFreeze   bool
}

// Frozen reports whether the bomb is held by a freeze at sim time now.
func (b Bomb) Frozen(now time.Duration) bool {
	return b.HasFreeze && now < b.FrozenUntil
}

// arm makes the bomb live. A positive fuse overrides the default.
func (b *Bomb) arm(fuse time.Duration) {
	b.Armed = true
	if traits[b.Kind].fused {
		b.Timer = fuse
		b.HasTimer = true
	}
}

// freezeUntil extends the freeze window; it never shortens an existing one.
func (b *Bomb) freezeUntil(until time.Duration) bool {
	if traits[b.Kind].freezeImmune {
		return false
	}
	if !b.HasFreeze || until > b.FrozenUntil {
		b.FrozenUntil = until
		b.HasFreeze = true
	}
	return true
}
