package usecase

import "github.com/pricelens/backend/internal/domain"

// State is a step of the request state machine.
type State int

const (
	StateStart State = iota
	StateNormalize
	StateClassify
	StateChat
	StateOther
	StatePriceLocal
	StatePriceOnline
	StateSynthesize
	StateRespond
)

var stateNames = [...]string{
	StateStart:       "start",
	StateNormalize:   "normalize",
	StateClassify:    "classify",
	StateChat:        "chat",
	StateOther:       "other",
	StatePriceLocal:  "price_local",
	StatePriceOnline: "price_online",
	StateSynthesize:  "synthesize",
	StateRespond:     "respond",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// intentTransitions maps a classified intent to the state after Classify.
var intentTransitions = map[domain.Intent]State{
	domain.IntentPriceQuery:       StatePriceLocal,
	domain.IntentPriceQueryOnline: StatePriceOnline,
	domain.IntentChat:             StateChat,
	domain.IntentOther:            StateOther,
}

// NextStateForIntent returns the branch taken after classification. Unknown
// intents take the local price branch.
func NextStateForIntent(intent domain.Intent) State {
	if s, ok := intentTransitions[intent]; ok {
		return s
	}
	return StatePriceLocal
}
