package services

// Stage is a step of the registration state machine.
//
//	Idle -> ConnectivityChecked -> DigestComputed -> Uploaded -> Stored -> Done
//
// Any step may move to Errored instead, after which the registration is over.
type Stage int

const (
	StageIdle Stage = iota
	StageConnectivityChecked
	StageDigestComputed
	StageUploaded
	StageStored
	StageDone
	StageErrored
)

var stageNames = [...]string{
	StageIdle:                "idle",
	StageConnectivityChecked: "connectivity_checked",
	StageDigestComputed:      "digest_computed",
	StageUploaded:            "uploaded",
	StageStored:              "stored",
	StageDone:                "done",
	StageErrored:             "errored",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Terminal reports whether no further transition can happen.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageErrored
}

// transitions lists the allowed successors of each stage.
var transitions = map[Stage][]Stage{
	StageIdle:                {StageConnectivityChecked, StageErrored},
	StageConnectivityChecked: {StageDigestComputed, StageErrored},
	StageDigestComputed:      {StageUploaded, StageErrored},
	StageUploaded:            {StageStored, StageErrored},
	StageStored:              {StageDone},
}

// CanMove reports whether to directly follows s.
func (s Stage) CanMove(to Stage) bool {
	for _, n := range transitions[s] {
		if n == to {
			return true
		}
	}
	return false
}
