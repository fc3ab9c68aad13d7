package model

// ReactID is the single supported reaction kind.
const ReactID = 1

// React groups a reaction kind with the users who reacted with it. The
// per-viewer "did I react" flag is derived at read time, never persisted.
type React struct {
	ReactID int   `json:"reactId"`
	UIDs    []int `json:"uIds"`
}

// Message lives inside a channel or a DM. Message ids share one namespace
// across both. TimeSent may be in the future for deferred sends.
type Message struct {
	MessageID int     `json:"messageId"`
	UID       int     `json:"uId"`
	Message   string  `json:"message"`
	TimeSent  int64   `json:"timeSent"`
	IsPinned  bool    `json:"isPinned"`
	Reacts    []React `json:"reacts"`
}

// ReactView is a React annotated with the requesting viewer's state.
type ReactView struct {
	ReactID           int   `json:"reactId"`
	UIDs              []int `json:"uIds"`
	IsThisUserReacted bool  `json:"isThisUserReacted"`
}

// MessageView is a Message as seen by a particular viewer.
type MessageView struct {
	MessageID int         `json:"messageId"`
	UID       int         `json:"uId"`
	Message   string      `json:"message"`
	TimeSent  int64       `json:"timeSent"`
	IsPinned  bool        `json:"isPinned"`
	Reacts    []ReactView `json:"reacts"`
}

// View renders the message for a viewer, deriving isThisUserReacted from the
// react membership sets.
func (m *Message) View(viewerID int) MessageView {
	reacts := make([]ReactView, 0, len(m.Reacts))
	for _, r := range m.Reacts {
		reacted := false
		for _, id := range r.UIDs {
			if id == viewerID {
				reacted = true
				break
			}
		}
		reacts = append(reacts, ReactView{
			ReactID:           r.ReactID,
			UIDs:              r.UIDs,
			IsThisUserReacted: reacted,
		})
	}
	return MessageView{
		MessageID: m.MessageID,
		UID:       m.UID,
		Message:   m.Message,
		TimeSent:  m.TimeSent,
		IsPinned:  m.IsPinned,
		Reacts:    reacts,
	}
}
