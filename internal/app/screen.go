package app

// Screen is the single enumerated value driving which view is active.
type Screen int

const (
	ScreenSignIn Screen = iota
	ScreenHome
	ScreenEvList
	ScreenEvDetails
	ScreenPay
	ScreenConfirmation
	ScreenProfile
	// ScreenUnknown is a defensive terminal fallback; no defined
	// transition produces it.
	ScreenUnknown
)

var screenNames = map[Screen]string{
	ScreenSignIn:       "signIn",
	ScreenHome:         "home",
	ScreenEvList:       "evList",
	ScreenEvDetails:    "evDetails",
	ScreenPay:          "pay",
	ScreenConfirmation: "confirmation",
	ScreenProfile:      "profile",
	ScreenUnknown:      "unknown",
}

func (s Screen) String() string {
	if n, ok := screenNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseScreen maps a wire name back to a Screen, landing on
// ScreenUnknown for anything unrecognized.
func ParseScreen(name string) Screen {
	for s, n := range screenNames {
		if n == name && s != ScreenUnknown {
			return s
		}
	}
	return ScreenUnknown
}

// NavTarget is a bottom-nav destination.
type NavTarget string

const (
	NavHome    NavTarget = "home"
	NavTrack   NavTarget = "track"
	NavProfile NavTarget = "profile"
)
