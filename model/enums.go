package model

import "fmt"

type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

var teeShirtSizes = []TeeShirtSize{
	TeeShirtNotSpecified,
	TeeShirtXSM, TeeShirtXSW,
	TeeShirtSM, TeeShirtSW,
	TeeShirtMM, TeeShirtMW,
	TeeShirtLM, TeeShirtLW,
	TeeShirtXLM, TeeShirtXLW,
	TeeShirtXXLM, TeeShirtXXLW,
	TeeShirtXXXLM, TeeShirtXXXLW,
}

func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	for _, size := range teeShirtSizes {
		if string(size) == s {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown tee shirt size %q", s)
}

type SessionType string

const (
	SessionNotSpecified  SessionType = "NOT_SPECIFIED"
	SessionLecture       SessionType = "LECTURE"
	SessionKeynote       SessionType = "KEYNOTE"
	SessionWorkshop      SessionType = "WORKSHOP"
	SessionDemonstration SessionType = "DEMONSTRATION"
	SessionPanel         SessionType = "PANEL"
)

var sessionTypes = []SessionType{
	SessionNotSpecified,
	SessionLecture,
	SessionKeynote,
	SessionWorkshop,
	SessionDemonstration,
	SessionPanel,
}

func ParseSessionType(s string) (SessionType, error) {
	for _, t := range sessionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown session type %q", s)
}

// SessionTypes returns every known session type in declaration order.
func SessionTypes() []SessionType {
	out := make([]SessionType, len(sessionTypes))
	copy(out, sessionTypes)
	return out
}
