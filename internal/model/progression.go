package model

// XPPerLevel is the experience needed to gain one level.
const XPPerLevel = 250

var podiumXP = [...]int{100, 60, 40}

const finisherXP = 15

// XPForPosition returns the experience earned by a 1-based finish position.
func XPForPosition(position int) int {
	if position >= 1 && position <= len(podiumXP) {
		return podiumXP[position-1]
	}
	return finisherXP
}

// LevelForXP returns the level reached with xp total experience.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// IsPlace reports whether position finished on the podium.
func IsPlace(position int) bool {
	return position >= 1 && position <= len(podiumXP)
}
