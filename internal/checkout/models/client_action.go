package models

import pidlmodels "checkout/internal/pidl/models"

// ClientActionType discriminates ClientAction.
type ClientActionType string

const (
	ClientActionNone            ClientActionType = "None"
	ClientActionMergeData       ClientActionType = "MergeData"
	ClientActionPidl            ClientActionType = "Pidl"
	ClientActionHandleChallenge ClientActionType = "HandleChallenge"
)

// ClientAction tells the caller what to do next. Exactly one payload field is
// set, matching Type.
type ClientAction struct {
	Type      ClientActionType               `json:"type"`
	MergeData map[string]any                 `json:"merge_data,omitempty"`
	Resources []*pidlmodels.ResourceDocument `json:"resources,omitempty"`
	Challenge *ChallengeDescriptor           `json:"challenge,omitempty"`
}

func NoneAction() ClientAction {
	return ClientAction{Type: ClientActionNone}
}

func MergeDataAction(payload map[string]any) ClientAction {
	return ClientAction{Type: ClientActionMergeData, MergeData: payload}
}

func PidlAction(resources []*pidlmodels.ResourceDocument) ClientAction {
	return ClientAction{Type: ClientActionPidl, Resources: resources}
}

func HandleChallengeAction(c *ChallengeDescriptor) ClientAction {
	return ClientAction{Type: ClientActionHandleChallenge, Challenge: c}
}
